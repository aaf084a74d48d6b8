package db_fx

import (
	"database/sql"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"trailmap/internal/config"
	"trailmap/internal/infra"
)

var Module = fx.Provide(
	provideDB, provideBulkDB)

func provideDB(cfg *config.Config) *gorm.DB {
	return infra.InitPostgresql(cfg.PostgresURL)
}

func provideBulkDB(cfg *config.Config) *sql.DB {
	return infra.InitBulkDB(cfg.PostgresURL)
}

package search_fx

import (
	"database/sql"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"trailmap/internal/repositories"
)

var Module = fx.Provide(
	provideSearchRepo, provideBulkWriter)

func provideSearchRepo(db *gorm.DB, cache repositories.Cache) repositories.SearchRepository {
	return repositories.NewCachedSearchRepository(
		repositories.NewSearchRepository(db), cache, 30*time.Second)
}

func provideBulkWriter(db *sql.DB) *repositories.BulkFeatureWriter {
	return repositories.NewBulkFeatureWriter(db)
}

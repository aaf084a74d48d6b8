package config_fx

import (
	"go.uber.org/fx"

	"trailmap/internal/config"
)

var Module = fx.Provide(config.Load)

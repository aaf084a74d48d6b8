package cache_fx

import (
	"go.uber.org/fx"

	"trailmap/internal/config"
	"trailmap/internal/infra"
	"trailmap/internal/repositories"
	mem "trailmap/pkg/memcache"
)

var Module = fx.Provide(provideCache)

func provideCache(cfg *config.Config) repositories.Cache {
	if cfg.RedisURL != "" {
		return repositories.NewRedisCache(infra.InitRedis(cfg.RedisURL))
	}
	return mem.NewFeatureCache()
}

package osm_fx

import (
	"go.uber.org/fx"

	"trailmap/internal/config"
	"trailmap/internal/gateways/osmgw"
)

var Module = fx.Provide(provideFactory)

func provideFactory(cfg *config.Config) osmgw.Factory {
	return osmgw.NewClientFactory(cfg.OSMBaseURL, nil)
}

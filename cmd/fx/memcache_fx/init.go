package memcache_fx

import (
	"go.uber.org/fx"

	"novatrip/internal/config"
	mem "novatrip/pkg/memcache"
)

var Module = fx.Provide(provideGeocodeCache)

func provideGeocodeCache(cfg config.Config) mem.GeocodeStore {
	return mem.NewGeocodeCache(cfg.Geocoder.CacheTTL)
}

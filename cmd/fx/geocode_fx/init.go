package geocode_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"novatrip/internal/config"
	"novatrip/internal/repositories"
	"novatrip/internal/services"
	mem "novatrip/pkg/memcache"
)

var Module = fx.Provide(provideGeocoder, provideMapService)

func provideGeocoder(cfg config.Config, cache mem.GeocodeStore, logger *zap.Logger) services.GeocoderInterface {
	return services.NewNominatimClient(cfg.Geocoder, cache, logger)
}

func provideMapService(
	tripRepo repositories.TripRepositoryInterface,
	geocoder services.GeocoderInterface,
	cfg config.Config,
	logger *zap.Logger,
) services.MapServiceInterface {
	return services.NewMapService(tripRepo, geocoder, cfg.Geocoder.MaxConcurrency, logger)
}

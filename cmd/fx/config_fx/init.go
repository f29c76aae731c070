package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"novatrip/internal/config"
	"novatrip/internal/infra"
	"novatrip/internal/itinerary"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	providePipeline)

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	return infra.NewLogger(cfg.Log)
}

func providePipeline(cfg config.Config) itinerary.Pipeline {
	return cfg.Itinerary.Pipeline()
}

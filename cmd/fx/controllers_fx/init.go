package controllers_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"novatrip/internal/api/controllers"
	"novatrip/internal/infra"
)

var Module = fx.Options(
	fx.Provide(provideHealthController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewTripController))

func provideHealthController(db *gorm.DB) *controllers.HealthController {
	return controllers.NewHealthController(func(ctx context.Context) error {
		return infra.Ping(ctx, db)
	})
}

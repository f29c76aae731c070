package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"novatrip/internal/itinerary"
	"novatrip/internal/repositories"
	"novatrip/internal/services"
	"novatrip/pkg/utils"
)

var Module = fx.Provide(provideTripRepo, provideTripService, provideChatService)

func provideTripRepo(db *gorm.DB) repositories.TripRepositoryInterface {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepositoryInterface,
	generator utils.ItineraryGenerator,
	pipeline itinerary.Pipeline,
	logger *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, generator, pipeline, logger)
}

func provideChatService(
	tripRepo repositories.TripRepositoryInterface,
	generator utils.ItineraryGenerator,
	pipeline itinerary.Pipeline,
	logger *zap.Logger,
) services.ChatServiceInterface {
	return services.NewChatService(tripRepo, generator, pipeline, logger)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"novatrip/internal/itinerary"
	dbm "novatrip/internal/models/db_models"
	"novatrip/internal/models/request_models"
	"novatrip/internal/models/response_models"
	"novatrip/internal/repositories"
	"novatrip/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.CreateTripResult, error)
	GetTrip(ctx context.Context, tripID string) (*response_models.TripDetail, error)
	ListTrips(ctx context.Context, page int, pageSize int) (*response_models.TripList, error)
	ValidateItinerary(ctx context.Context, req request_models.ValidateItineraryRequest) response_models.ValidationResult
}

type TripService struct {
	tripRepo  repositories.TripRepositoryInterface
	generator utils.ItineraryGenerator
	pipeline  itinerary.Pipeline
	logger    *zap.Logger
}

func NewTripService(
	tripRepo repositories.TripRepositoryInterface,
	generator utils.ItineraryGenerator,
	pipeline itinerary.Pipeline,
	logger *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo:  tripRepo,
		generator: generator,
		pipeline:  pipeline,
		logger:    logger,
	}
}

// CreateTrip generates an itinerary, runs it through the pipeline and stores
// it when accepted. A rejected itinerary is returned together with an error
// wrapping itinerary.ErrInvalidItinerary and nothing is saved.
func (s *TripService) CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.CreateTripResult, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if req.Days < 1 {
		return nil, fmt.Errorf("%w: days must be at least 1", utils.ErrInvalidInput)
	}
	people := req.NumPeople
	if people < 1 {
		people = 1
	}

	prompt := utils.BuildItineraryPrompt(destination, req.Budget, req.Days, req.TripType, people)
	raw, err := s.generator.GenerateItinerary(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", itinerary.ErrGenerationFailed, err)
	}

	res := s.pipeline.Run(raw, itinerary.ParseBudget(req.Budget))
	result := &response_models.CreateTripResult{Validation: toValidationResult(res)}
	if res.Outcome.Failure == itinerary.FailureGeneration {
		return nil, fmt.Errorf("%w: %s", itinerary.ErrGenerationFailed, res.Outcome.Message)
	}
	if !res.Outcome.IsValid {
		s.logger.Info("generated itinerary rejected",
			zap.String("destination", destination),
			zap.String("failure", string(res.Outcome.Failure)))
		return result, res.Outcome.Err()
	}

	trip := &dbm.Trip{
		Destination:   destination,
		Budget:        req.Budget,
		Days:          req.Days,
		TripType:      req.TripType,
		NumPeople:     people,
		ItineraryText: res.Text,
	}
	days := toDBDays(res.Outcome.Days)
	if err := s.tripRepo.CreateTrip(ctx, trip, days); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	trip.ItineraryDays = days

	s.logger.Info("trip created",
		zap.String("trip_id", trip.ID.String()),
		zap.Int("days", len(days)),
		zap.Bool("scaled", res.Scaled))
	result.Trip = toTripDetail(trip)
	return result, nil
}

func (s *TripService) GetTrip(ctx context.Context, tripID string) (*response_models.TripDetail, error) {
	trip, err := getTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}
	return toTripDetail(trip), nil
}

func (s *TripService) ListTrips(ctx context.Context, page int, pageSize int) (*response_models.TripList, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	trips, total, err := s.tripRepo.ListTrips(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := &response_models.TripList{
		Trips:    make([]response_models.TripSummary, 0, len(trips)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for i := range trips {
		out.Trips = append(out.Trips, toTripSummary(&trips[i]))
	}
	return out, nil
}

// ValidateItinerary runs text through the pipeline without storing anything.
func (s *TripService) ValidateItinerary(ctx context.Context, req request_models.ValidateItineraryRequest) response_models.ValidationResult {
	p := s.pipeline
	if req.MaxPlacesPerDay > 0 {
		p.Rules.MaxPlacesPerDay = req.MaxPlacesPerDay
	}
	return toValidationResult(p.Run(req.ItineraryText, itinerary.ParseBudget(req.Budget)))
}

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

// chatHistoryLimit is how many edits are kept per trip.
const chatHistoryLimit = 10

type ChatServiceInterface interface {
	ModifyItinerary(ctx context.Context, tripID string, req request_models.ChatModifyRequest) (*response_models.ChatModifyResult, error)
}

type ChatService struct {
	tripRepo  repositories.TripRepositoryInterface
	generator utils.ItineraryGenerator
	pipeline  itinerary.Pipeline
	logger    *zap.Logger
}

func NewChatService(
	tripRepo repositories.TripRepositoryInterface,
	generator utils.ItineraryGenerator,
	pipeline itinerary.Pipeline,
	logger *zap.Logger,
) ChatServiceInterface {
	return &ChatService{
		tripRepo:  tripRepo,
		generator: generator,
		pipeline:  pipeline,
		logger:    logger,
	}
}

type editReply struct {
	Itinerary     string   `json:"itinerary"`
	ItineraryText string   `json:"itinerary_text"`
	Places        []string `json:"places"`
}

// ModifyItinerary applies a natural-language edit to a trip's itinerary.
// The edited text must pass the same pipeline as a generated one; only then
// are the trip's days replaced.
func (s *ChatService) ModifyItinerary(ctx context.Context, tripID string, req request_models.ChatModifyRequest) (*response_models.ChatModifyResult, error) {
	instruction := strings.TrimSpace(req.Instruction)
	if instruction == "" {
		return nil, fmt.Errorf("%w: no instruction provided", utils.ErrInvalidInput)
	}

	trip, err := getTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}

	current := strings.TrimSpace(req.CurrentItinerary)
	if current == "" {
		current = trip.ItineraryText
	}
	if strings.TrimSpace(current) == "" {
		return nil, fmt.Errorf("%w: no current itinerary provided", utils.ErrInvalidInput)
	}

	sanitized := itinerary.StripMarkers(itinerary.Sanitize(current, s.pipeline.MaxChars))
	raw, err := s.generator.ModifyItinerary(ctx, utils.BuildModifyPrompt(sanitized, instruction))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", itinerary.ErrGenerationFailed, err)
	}
	if itinerary.IsGenerationError(raw) {
		return nil, fmt.Errorf("%w: %s", itinerary.ErrGenerationFailed, strings.TrimSpace(raw))
	}

	text, places := parseEditReply(raw)
	text = itinerary.Align(itinerary.StripMarkers(text))

	res := s.pipeline.Run(text, itinerary.ParseBudget(trip.Budget))
	result := &response_models.ChatModifyResult{
		Places:     places,
		Validation: toValidationResult(res),
	}

	entry := dbm.ChatEntry{Instruction: instruction, Result: res.Text, Accepted: res.Outcome.IsValid}
	if err := s.tripRepo.AppendChatHistory(ctx, trip.ID, entry, chatHistoryLimit); err != nil {
		s.logger.Warn("could not save chat history", zap.String("trip_id", trip.ID.String()), zap.Error(err))
	}

	if !res.Outcome.IsValid {
		return result, res.Outcome.Err()
	}

	var pinned []string
	if len(places) > 0 {
		pinned = places
	}
	days := toDBDays(res.Outcome.Days)
	if err := s.tripRepo.ReplaceItineraryDays(ctx, trip.ID, res.Text, days, pinned); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if pinned != nil {
		trip.PinnedPlaces = pinned
	}

	trip.ItineraryText = res.Text
	trip.ItineraryDays = days
	result.Saved = true
	result.Trip = toTripDetail(trip)
	return result, nil
}

// parseEditReply reads the model's JSON answer. Anything that is not a JSON
// object with an itinerary is taken as the itinerary text itself.
func parseEditReply(raw string) (string, []string) {
	reply, err := utils.ExtractJSON[editReply](raw)
	if err != nil {
		return raw, []string{}
	}
	text := reply.Itinerary
	if text == "" {
		text = reply.ItineraryText
	}
	if strings.TrimSpace(text) == "" {
		return raw, []string{}
	}

	places := make([]string, 0, len(reply.Places))
	for _, p := range reply.Places {
		if p = strings.TrimSpace(p); p != "" {
			places = append(places, p)
		}
	}
	return text, places
}

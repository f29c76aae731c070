package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"novatrip/internal/itinerary"
	dbm "novatrip/internal/models/db_models"
	"novatrip/internal/models/response_models"
	"novatrip/internal/repositories"
	"novatrip/pkg/utils"
)

// getTrip loads a trip by id. An id that is not a uuid names no trip and
// never reaches the database.
func getTrip(ctx context.Context, repo repositories.TripRepositoryInterface, tripID string) (*dbm.Trip, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return nil, utils.ErrTripNotFound
	}
	trip, err := repo.GetTripById(ctx, id.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func toValidationResult(res itinerary.Result) response_models.ValidationResult {
	return response_models.ValidationResult{
		IsValid:          res.Outcome.IsValid,
		Message:          res.Outcome.Message,
		Failure:          string(res.Outcome.Failure),
		NeedsScaling:     res.Outcome.NeedsScaling,
		ScalingAttempted: res.ScalingAttempted,
		Scaled:           res.Scaled,
		Note:             res.Note,
		ItineraryText:    res.Text,
		TotalCost:        res.Outcome.Days.TotalCost(),
		Days:             toDayResponses(res.Outcome.Days),
	}
}

func toDayResponses(days itinerary.Document) []response_models.ItineraryDay {
	out := make([]response_models.ItineraryDay, 0, len(days))
	for _, d := range days {
		out = append(out, response_models.ItineraryDay{
			DayNumber:   d.DayNumber,
			Description: d.Description,
			Cost:        d.Cost,
			Places:      d.Places,
		})
	}
	return out
}

// toDBDays keeps only what is stored; cost and places are derived on read.
func toDBDays(days itinerary.Document) []dbm.ItineraryDay {
	out := make([]dbm.ItineraryDay, 0, len(days))
	for _, d := range days {
		out = append(out, dbm.ItineraryDay{DayNumber: d.DayNumber, Description: d.Description})
	}
	return out
}

// documentFromDB rebuilds the parsed document from stored day rows.
func documentFromDB(days []dbm.ItineraryDay) itinerary.Document {
	doc := make(itinerary.Document, 0, len(days))
	for _, d := range days {
		doc = append(doc, itinerary.DayRecord{
			DayNumber:   d.DayNumber,
			Description: d.Description,
			Cost:        itinerary.ExtractCost(d.Description),
			Places:      itinerary.ExtractPlaces(d.Description),
		})
	}
	return doc
}

func toTripSummary(t *dbm.Trip) response_models.TripSummary {
	return response_models.TripSummary{
		ID:          t.ID.String(),
		Destination: t.Destination,
		Budget:      t.Budget,
		Days:        t.Days,
		TripType:    t.TripType,
		CreatedAt:   t.CreatedAt,
	}
}

func toTripDetail(t *dbm.Trip) *response_models.TripDetail {
	doc := documentFromDB(t.ItineraryDays)

	history := []response_models.ChatEntry{}
	if len(t.ChatHistory) > 0 {
		var entries []dbm.ChatEntry
		if err := json.Unmarshal(t.ChatHistory, &entries); err == nil {
			for _, e := range entries {
				history = append(history, response_models.ChatEntry(e))
			}
		}
	}

	return &response_models.TripDetail{
		TripSummary:   toTripSummary(t),
		NumPeople:     t.NumPeople,
		ItineraryText: t.ItineraryText,
		TotalCost:     doc.TotalCost(),
		PinnedPlaces:  append([]string{}, t.PinnedPlaces...),
		Itinerary:     toDayResponses(doc),
		ChatHistory:   history,
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"novatrip/internal/itinerary"
	dbm "novatrip/internal/models/db_models"
	"novatrip/internal/models/request_models"
	"novatrip/pkg/utils"
)

func newTripService(repo *fakeTripRepo, gen *fakeGenerator) TripServiceInterface {
	return NewTripService(repo, gen, itinerary.Pipeline{}, zap.NewNop())
}

func TestTripService_CreateTrip_Accepted(t *testing.T) {
	repo := newFakeTripRepo()
	gen := &fakeGenerator{reply: twoDayText}
	svc := newTripService(repo, gen)

	res, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{
		Destination: " Goa ",
		Budget:      "1500 INR",
		Days:        2,
		TripType:    "beach",
	})
	require.NoError(t, err)
	require.NotNil(t, res.Trip)

	assert.True(t, res.Validation.IsValid)
	assert.Equal(t, 1100, res.Validation.TotalCost)
	assert.Equal(t, "Goa", res.Trip.Destination)
	assert.Equal(t, 1, res.Trip.NumPeople)
	assert.Equal(t, 1100, res.Trip.TotalCost)
	require.Len(t, res.Trip.Itinerary, 2)
	assert.Equal(t, []string{"X", "Y"}, res.Trip.Itinerary[0].Places)
	assert.Equal(t, 1, repo.created)
	assert.Contains(t, gen.lastPrompt, "Goa")
}

func TestTripService_CreateTrip_Scaled(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTripService(repo, &fakeGenerator{reply: twoDayText})

	res, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{
		Destination: "Goa", Budget: "5000 INR", Days: 2,
	})
	require.NoError(t, err)
	assert.True(t, res.Validation.Scaled)
	assert.Equal(t, 4600, res.Trip.TotalCost)

	stored, err := repo.GetTripById(context.Background(), res.Trip.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.ItineraryText, "Cost: 4000 INR")
}

func TestTripService_CreateTrip_RejectedIsNotSaved(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTripService(repo, &fakeGenerator{reply: twoDayText})

	res, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{
		Destination: "Goa", Budget: "1000 INR", Days: 2,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, itinerary.ErrBudgetExceeded)
	require.NotNil(t, res)
	assert.Nil(t, res.Trip)
	assert.Equal(t, "budget_exceeded", res.Validation.Failure)
	assert.Len(t, res.Validation.Days, 2)
	assert.Zero(t, repo.created)
}

func TestTripService_CreateTrip_GenerationFailures(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), &fakeGenerator{err: errors.New("boom")})
	_, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{Destination: "Goa", Budget: "1", Days: 1})
	assert.ErrorIs(t, err, itinerary.ErrGenerationFailed)

	svc = newTripService(newFakeTripRepo(), &fakeGenerator{reply: "ERROR: quota"})
	_, err = svc.CreateTrip(context.Background(), request_models.CreateTripRequest{Destination: "Goa", Budget: "1", Days: 1})
	assert.ErrorIs(t, err, itinerary.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota")
}

func TestTripService_CreateTrip_InvalidInput(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), &fakeGenerator{reply: twoDayText})
	_, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{Destination: "  ", Days: 1})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.CreateTrip(context.Background(), request_models.CreateTripRequest{Destination: "Goa"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestTripService_CreateTrip_DatabaseError(t *testing.T) {
	repo := newFakeTripRepo()
	repo.failAll = errors.New("connection refused")
	svc := newTripService(repo, &fakeGenerator{reply: twoDayText})

	_, err := svc.CreateTrip(context.Background(), request_models.CreateTripRequest{Destination: "Goa", Budget: "1500", Days: 2})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestTripService_GetTrip(t *testing.T) {
	repo := newFakeTripRepo()
	trip := repo.put(&dbm.Trip{
		Destination:   "Goa",
		Budget:        "1500 INR",
		ItineraryText: twoDayText,
		PinnedPlaces:  []string{"Fort Aguada"},
		ChatHistory:   []byte(`[{"instruction":"less walking","result":"x","accepted":true,"created_at":5}]`),
		ItineraryDays: []dbm.ItineraryDay{
			{DayNumber: 1, Description: "Day 1: A\nCost: 500 INR\nPlaces: X, Y"},
			{DayNumber: 2, Description: "Day 2: B\nCost: 600 INR\nPlaces: Z"},
		},
	})
	svc := newTripService(repo, &fakeGenerator{})

	got, err := svc.GetTrip(context.Background(), trip.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1100, got.TotalCost)
	assert.Equal(t, 600, got.Itinerary[1].Cost)
	assert.Equal(t, []string{"Fort Aguada"}, got.PinnedPlaces)
	require.Len(t, got.ChatHistory, 1)
	assert.Equal(t, "less walking", got.ChatHistory[0].Instruction)

	_, err = svc.GetTrip(context.Background(), "missing")
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestTripService_ListTrips(t *testing.T) {
	repo := newFakeTripRepo()
	repo.put(&dbm.Trip{Destination: "Goa"})
	repo.put(&dbm.Trip{Destination: "Jaipur"})
	svc := newTripService(repo, &fakeGenerator{})

	list, err := svc.ListTrips(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Len(t, list.Trips, 2)
	assert.EqualValues(t, 2, list.Total)

	_, err = svc.ListTrips(context.Background(), 0, 20)
	assert.ErrorIs(t, err, utils.ErrInvalidPage)
	_, err = svc.ListTrips(context.Background(), 1, 101)
	assert.ErrorIs(t, err, utils.ErrInvalidPageSize)
}

func TestTripService_ValidateItinerary(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), &fakeGenerator{})

	res := svc.ValidateItinerary(context.Background(), request_models.ValidateItineraryRequest{
		ItineraryText: twoDayText,
		Budget:        "1500 INR",
	})
	assert.True(t, res.IsValid)
	assert.Equal(t, twoDayText, res.ItineraryText)

	res = svc.ValidateItinerary(context.Background(), request_models.ValidateItineraryRequest{
		ItineraryText:   twoDayText,
		Budget:          "1500 INR",
		MaxPlacesPerDay: 1,
	})
	assert.False(t, res.IsValid)
	assert.Equal(t, "too_many_places", res.Failure)
}

func TestTripService_GetTrip_MalformedID(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), &fakeGenerator{})

	for _, id := range []string{"abc", "", "123e4567-e89b-12d3-a456"} {
		_, err := svc.GetTrip(context.Background(), id)
		assert.ErrorIs(t, err, utils.ErrTripNotFound, id)
		assert.NotErrorIs(t, err, utils.ErrDatabaseError, id)
	}
}

func TestTripService_GetTrip_DatabaseError(t *testing.T) {
	repo := newFakeTripRepo()
	repo.failAll = errors.New("connection reset")
	svc := newTripService(repo, &fakeGenerator{})

	_, err := svc.GetTrip(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

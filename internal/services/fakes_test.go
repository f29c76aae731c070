package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "novatrip/internal/models/db_models"
	mem "novatrip/pkg/memcache"
)

const twoDayText = "Day 1: A\nCost: 500 INR\nPlaces: X, Y\n\nDay 2: B\nCost: 600 INR\nPlaces: Z"

type fakeTripRepo struct {
	mu          sync.Mutex
	trips       map[string]*dbm.Trip
	failAll     error
	failReplace error

	created  int
	replaced int
	history  []dbm.ChatEntry
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: map[string]*dbm.Trip{}}
}

func (r *fakeTripRepo) put(t *dbm.Trip) *dbm.Trip {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.trips[t.ID.String()] = t
	return t
}

func (r *fakeTripRepo) CreateTrip(ctx context.Context, trip *dbm.Trip, days []dbm.ItineraryDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.created++
	trip.ID = uuid.New()
	trip.CreatedAt = 1700000000
	for i := range days {
		days[i].TripID = trip.ID
		days[i].Position = i
	}
	stored := *trip
	stored.ItineraryDays = append([]dbm.ItineraryDay(nil), days...)
	r.trips[trip.ID.String()] = &stored
	return nil
}

func (r *fakeTripRepo) ReplaceItineraryDays(ctx context.Context, tripID uuid.UUID, text string, days []dbm.ItineraryDay, pinned []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	if r.failReplace != nil {
		return r.failReplace
	}
	t, ok := r.trips[tripID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.replaced++
	t.ItineraryText = text
	t.ItineraryDays = append([]dbm.ItineraryDay(nil), days...)
	if pinned != nil {
		t.PinnedPlaces = pinned
	}
	return nil
}

func (r *fakeTripRepo) GetTripById(ctx context.Context, id string) (*dbm.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(`invalid input syntax for type uuid: "` + id + `"`)
	}
	t, ok := r.trips[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTripRepo) ListTrips(ctx context.Context, page, pageSize int) ([]dbm.Trip, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, 0, r.failAll
	}
	out := make([]dbm.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTripRepo) AppendChatHistory(ctx context.Context, tripID uuid.UUID, entry dbm.ChatEntry, keep int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return r.failAll
	}
	r.history = append(r.history, entry)
	if t, ok := r.trips[tripID.String()]; ok {
		raw, _ := json.Marshal(r.history)
		t.ChatHistory = raw
	}
	return nil
}

type fakeGenerator struct {
	reply       string
	err         error
	lastPrompt  string
	modifyCalls int
}

func (g *fakeGenerator) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	return g.reply, g.err
}

func (g *fakeGenerator) ModifyItinerary(ctx context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	g.modifyCalls++
	return g.reply, g.err
}

type fakeGeocoder struct {
	mu     sync.Mutex
	known  map[string]mem.Coordinates
	failOn string
	calls  []string
}

func (g *fakeGeocoder) Geocode(ctx context.Context, place string) (mem.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, place)
	if strings.EqualFold(place, g.failOn) {
		return mem.Coordinates{}, errors.New("geocoder down")
	}
	if c, ok := g.known[place]; ok {
		return c, nil
	}
	return mem.Coordinates{DisplayName: place}, nil
}

func jsonEscape(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}

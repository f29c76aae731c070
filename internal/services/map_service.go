package services

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"novatrip/internal/itinerary"
	"novatrip/internal/models/response_models"
	"novatrip/internal/repositories"
	mem "novatrip/pkg/memcache"
)

type MapServiceInterface interface {
	TripMap(ctx context.Context, tripID string) (*response_models.TripMap, error)
}

type MapService struct {
	tripRepo       repositories.TripRepositoryInterface
	geocoder       GeocoderInterface
	maxConcurrency int
	logger         *zap.Logger
}

func NewMapService(tripRepo repositories.TripRepositoryInterface, geocoder GeocoderInterface, maxConcurrency int, logger *zap.Logger) MapServiceInterface {
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	return &MapService{
		tripRepo:       tripRepo,
		geocoder:       geocoder,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// TripMap resolves the places of every day plus the destination. Places that
// cannot be resolved are listed without coordinates.
func (s *MapService) TripMap(ctx context.Context, tripID string) (*response_models.TripMap, error) {
	trip, err := getTrip(ctx, s.tripRepo, tripID)
	if err != nil {
		return nil, err
	}

	type dayPlaces struct {
		number int
		places []string
	}
	days := make([]dayPlaces, 0, len(trip.ItineraryDays))
	unique := map[string]struct{}{trip.Destination: {}}
	for _, d := range trip.ItineraryDays {
		places := itinerary.ExtractPlaces(d.Description)
		days = append(days, dayPlaces{number: d.DayNumber, places: places})
		for _, p := range places {
			unique[p] = struct{}{}
		}
	}

	var (
		mu       sync.Mutex
		resolved = make(map[string]mem.Coordinates, len(unique))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for place := range unique {
		place := place
		g.Go(func() error {
			coords, err := s.geocoder.Geocode(gctx, place)
			if err != nil {
				s.logger.Warn("geocode failed", zap.String("place", place), zap.Error(err))
				return nil
			}
			mu.Lock()
			resolved[place] = coords
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := &response_models.TripMap{
		TripID: trip.ID.String(),
		Days:   make([]response_models.MapDay, 0, len(days)),
		Pinned: append([]string{}, trip.PinnedPlaces...),
	}
	if c, ok := resolved[trip.Destination]; ok && c.Found {
		m := marker(trip.Destination, c)
		out.Center = &m
	}
	for _, d := range days {
		md := response_models.MapDay{DayNumber: d.number, Markers: make([]response_models.MapMarker, 0, len(d.places))}
		for _, p := range d.places {
			md.Markers = append(md.Markers, marker(p, resolved[p]))
		}
		out.Days = append(out.Days, md)
	}
	return out, nil
}

func marker(name string, c mem.Coordinates) response_models.MapMarker {
	m := response_models.MapMarker{Name: name}
	if c.Found {
		lat, lon := c.Lat, c.Lon
		m.Latitude = &lat
		m.Longitude = &lon
		m.Resolved = true
	}
	return m
}

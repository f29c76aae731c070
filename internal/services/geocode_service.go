package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"novatrip/internal/config"
	mem "novatrip/pkg/memcache"
	"novatrip/pkg/utils"
)

type GeocoderInterface interface {
	// Geocode resolves a place name. An unknown place is not an error: the
	// returned coordinates have Found set to false.
	Geocode(ctx context.Context, place string) (mem.Coordinates, error)
}

// NominatimClient resolves place names with the OpenStreetMap Nominatim
// search API, one result per query, through a shared cache.
type NominatimClient struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
	Cache     mem.GeocodeStore
	limiter   *rate.Limiter
	logger    *zap.Logger
}

func NewNominatimClient(cfg config.GeocoderConfig, cache mem.GeocodeStore, logger *zap.Logger) *NominatimClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &NominatimClient{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		BaseURL:   cfg.URL,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
	}
}

func (c *NominatimClient) Geocode(ctx context.Context, place string) (mem.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return mem.Coordinates{}, nil
	}
	if v, ok := c.Cache.Get(place); ok {
		return v, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return mem.Coordinates{}, err
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return mem.Coordinates{}, fmt.Errorf("geocoder url: %w", err)
	}
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return mem.Coordinates{}, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return mem.Coordinates{}, fmt.Errorf("%w: nominatim http error: %v", utils.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return mem.Coordinates{}, fmt.Errorf("%w: nominatim bad status: %s", utils.ErrUpstream, resp.Status)
	}

	var payload []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return mem.Coordinates{}, fmt.Errorf("%w: nominatim decode: %v", utils.ErrUpstream, err)
	}

	coords := mem.Coordinates{DisplayName: place}
	if len(payload) > 0 {
		lat, latErr := strconv.ParseFloat(payload[0].Lat, 64)
		lon, lonErr := strconv.ParseFloat(payload[0].Lon, 64)
		if latErr == nil && lonErr == nil {
			coords = mem.Coordinates{Lat: lat, Lon: lon, DisplayName: payload[0].DisplayName, Found: true}
		}
	}

	if !c.Cache.Add(place, coords) {
		// lost a race with another lookup of the same place
		if v, ok := c.Cache.Get(place); ok {
			return v, nil
		}
	}
	c.logger.Debug("geocoded place", zap.String("place", place), zap.Bool("found", coords.Found))
	return coords, nil
}

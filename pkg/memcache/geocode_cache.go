package mem

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Coordinates is a resolved place. Found is false for places the geocoder
// could not resolve, which are cached too.
type Coordinates struct {
	Lat         float64
	Lon         float64
	DisplayName string
	Found       bool
}

type GeocodeStore interface {
	Get(place string) (Coordinates, bool)

	// Add stores c unless place already has an entry. Entries never change
	// once written; the return value tells whether this call stored it.
	Add(place string, c Coordinates) bool

	Len() int
}

type GeocodeCache struct {
	c *cache.Cache
}

// NewGeocodeCache keeps entries for ttl; expired entries are purged hourly.
func NewGeocodeCache(ttl time.Duration) *GeocodeCache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &GeocodeCache{c: cache.New(ttl, time.Hour)}
}

func Key(place string) string {
	return strings.ToLower(strings.Join(strings.Fields(place), " "))
}

func (s *GeocodeCache) Get(place string) (Coordinates, bool) {
	v, ok := s.c.Get(Key(place))
	if !ok {
		return Coordinates{}, false
	}
	return v.(Coordinates), true
}

func (s *GeocodeCache) Add(place string, c Coordinates) bool {
	k := Key(place)
	if k == "" {
		return false
	}
	return s.c.Add(k, c, cache.DefaultExpiration) == nil
}

func (s *GeocodeCache) Len() int {
	return s.c.ItemCount()
}

package mem

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeCache_KeyNormalisation(t *testing.T) {
	c := NewGeocodeCache(time.Hour)
	require.True(t, c.Add("  Baga   Beach ", Coordinates{Lat: 15.55, Lon: 73.75, Found: true}))

	got, ok := c.Get("baga beach")
	require.True(t, ok)
	assert.Equal(t, 15.55, got.Lat)
	assert.Equal(t, 1, c.Len())
}

func TestGeocodeCache_EntriesAreImmutable(t *testing.T) {
	c := NewGeocodeCache(time.Hour)
	assert.True(t, c.Add("Fort", Coordinates{Lat: 1, Found: true}))
	assert.False(t, c.Add("fort", Coordinates{Lat: 2, Found: true}))

	got, _ := c.Get("FORT")
	assert.Equal(t, 1.0, got.Lat)
	assert.False(t, c.Add("   ", Coordinates{}))
}

func TestGeocodeCache_Expiry(t *testing.T) {
	c := NewGeocodeCache(20 * time.Millisecond)
	c.Add("Fort", Coordinates{Found: true})
	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("Fort")
	assert.False(t, ok)
}

func TestGeocodeCache_ConcurrentAccess(t *testing.T) {
	c := NewGeocodeCache(time.Hour)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				place := fmt.Sprintf("place-%d", i%50)
				c.Add(place, Coordinates{Lat: float64(i % 50), Found: true})
				if got, ok := c.Get(place); ok {
					assert.Equal(t, float64(i%50), got.Lat)
				}
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 50, c.Len())
}

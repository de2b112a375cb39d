package cache

import (
	"sync"
	"time"

	"github.com/bbernstein/tidecal/internal/models"
)

const stationCacheExpiry = 24 * time.Hour

// StationCache holds the station catalog in memory for a day
type StationCache struct {
	stations    []models.Station
	lastUpdated time.Time
	clock       clock
	mu          sync.RWMutex
}

func NewStationCache() *StationCache {
	return &StationCache{
		stations:    make([]models.Station, 0),
		lastUpdated: time.Time{}, // Zero time to ensure first fetch
		clock:       &systemClock{},
	}
}

func (c *StationCache) GetStations() []models.Station {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isExpired() {
		return nil
	}
	return c.stations
}

func (c *StationCache) SetStations(stations []models.Station) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stations = stations
	c.lastUpdated = c.clock.Now()
}

func (c *StationCache) isExpired() bool {
	return c.clock.Now().Sub(c.lastUpdated) > stationCacheExpiry
}

package station

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bbernstein/tidecal/internal/cache"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/rs/zerolog/log"
)

// Finder serves the station catalog. The list is read from memory, then from
// the published source, and finally from the built-in JMA catalog, which also
// seeds an empty source.
type Finder struct {
	source     cache.StationListCacheProvider
	cache      *cache.StationCache
	cacheMutex sync.RWMutex
}

// NewFinder creates a finder. source may be nil.
func NewFinder(source cache.StationListCacheProvider, stationCache *cache.StationCache) *Finder {
	if stationCache == nil {
		stationCache = cache.NewStationCache()
	}
	return &Finder{
		source: source,
		cache:  stationCache,
	}
}

func (f *Finder) FindStation(ctx context.Context, stationID string) (*models.Station, error) {
	for _, station := range f.getStationList(ctx) {
		if strings.EqualFold(station.ID, stationID) {
			log.Trace().Str("station_id", station.ID).Msg("FindStation: Found station")
			return &station, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrStationNotFound, stationID)
}

func (f *Finder) FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error) {
	if limit <= 0 {
		return []models.Station{}, nil
	}
	stations := f.getStationList(ctx)

	// Calculate distances in parallel using worker pool
	const workerCount = 4
	work := make(chan models.Station, len(stations))
	results := make(chan models.Station, len(stations))

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for station := range work {
				station.Distance = calculateDistance(lat, lon, station.Latitude, station.Longitude)
				results <- station
			}
		}()
	}

	for _, station := range stations {
		work <- station
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	stationsWithDistance := make([]models.Station, 0, len(stations))
	for station := range results {
		stationsWithDistance = append(stationsWithDistance, station)
	}

	// Sort by distance, ID breaks ties so results are stable
	sort.Slice(stationsWithDistance, func(i, j int) bool {
		if stationsWithDistance[i].Distance != stationsWithDistance[j].Distance {
			return stationsWithDistance[i].Distance < stationsWithDistance[j].Distance
		}
		return stationsWithDistance[i].ID < stationsWithDistance[j].ID
	})

	if len(stationsWithDistance) > limit {
		stationsWithDistance = stationsWithDistance[:limit]
	}

	return stationsWithDistance, nil
}

// ZoneFor returns the fixed zone of a station, or nil if it is unknown.
func (f *Finder) ZoneFor(stationID string) *time.Location {
	station, err := f.FindStation(context.Background(), stationID)
	if err != nil {
		return nil
	}
	if station.TimeZoneOffset == JSTOffset {
		return JST
	}
	return time.FixedZone(station.ID, station.TimeZoneOffset)
}

func (f *Finder) getStationList(ctx context.Context) []models.Station {
	f.cacheMutex.RLock()
	cachedStations := f.cache.GetStations()
	f.cacheMutex.RUnlock()

	if cachedStations != nil {
		log.Debug().Msg("Cache HIT for station list")
		return cachedStations
	}

	stations := f.loadFromSource(ctx)
	if len(stations) == 0 {
		stations = JMAStations()
		f.seedSource(ctx, stations)
	}

	log.Debug().Int("station_count", len(stations)).Msgf("Caching list of %d stations", len(stations))

	f.cacheMutex.Lock()
	f.cache.SetStations(stations)
	f.cacheMutex.Unlock()

	return stations
}

func (f *Finder) loadFromSource(ctx context.Context) []models.Station {
	if f.source == nil {
		return nil
	}
	log.Debug().Msg("Cache MISS for station list, reading published list")
	stations, err := f.source.GetStations(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Error reading published station list, using built-in catalog")
		return nil
	}
	return stations
}

func (f *Finder) seedSource(ctx context.Context, stations []models.Station) {
	if f.source == nil {
		return
	}
	if err := f.source.SaveStations(ctx, stations); err != nil {
		log.Warn().Err(err).Msg("Error publishing built-in station list")
	}
}

func calculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

package harmonic

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/rs/zerolog/log"
)

const DefaultInterval = 60 * time.Minute

// Reconstructor evaluates a model at the given instants and returns heights
// relative to the model mean.
type Reconstructor interface {
	Reconstruct(instants []time.Time, model *models.HarmonicModel) ([]float64, error)
}

// ZoneResolver maps a station to the zone its day boundaries are taken in.
// It returns nil for an unknown station.
type ZoneResolver interface {
	ZoneFor(stationID string) *time.Location
}

// Gateway predicts a location's height series for one calendar day
type Gateway struct {
	zones    ZoneResolver
	cache    *ModelCache
	engine   Reconstructor
	interval time.Duration
}

type Option func(*Gateway)

// WithInterval sets the sampling interval
func WithInterval(interval time.Duration) Option {
	return func(g *Gateway) {
		if interval > 0 {
			g.interval = interval
		}
	}
}

func NewGateway(zones ZoneResolver, cache *ModelCache, engine Reconstructor, opts ...Option) *Gateway {
	g := &Gateway{
		zones:    zones,
		cache:    cache,
		engine:   engine,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Predict returns absolute heights from one interval before local midnight
// through the last interval-aligned instant of the day, in the station's zone.
func (g *Gateway) Predict(ctx context.Context, loc models.Location, date civil.Date) ([]models.HeightSample, error) {
	zone := g.zones.ZoneFor(loc.StationID)
	if zone == nil {
		return nil, NewUnknownStationError(loc.StationID)
	}

	model, err := g.cache.Get(ctx, loc.StationID)
	if err != nil {
		return nil, err
	}

	instants := Instants(date, zone, g.interval)
	deviations, err := g.engine.Reconstruct(instants, model)
	if err != nil {
		return nil, NewPredictionError(loc.StationID, "reconstruction failed", err)
	}
	if len(deviations) != len(instants) {
		return nil, NewPredictionError(loc.StationID,
			fmt.Sprintf("engine returned %d heights for %d instants", len(deviations), len(instants)), nil)
	}

	series := make([]models.HeightSample, len(instants))
	for i, t := range instants {
		series[i] = models.HeightSample{Time: t, HeightCM: deviations[i] + model.Mean}
	}

	log.Debug().
		Str("location_id", loc.ID).
		Str("station_id", loc.StationID).
		Str("date", date.String()).
		Int("samples", len(series)).
		Msg("Predicted tide heights")

	return series, nil
}

// Instants returns the sampling instants for date in zone: one padding
// instant before midnight, then every interval until the next midnight.
func Instants(date civil.Date, zone *time.Location, interval time.Duration) []time.Time {
	midnight := date.In(zone)
	end := date.AddDays(1).In(zone)

	instants := make([]time.Time, 0, int(end.Sub(midnight)/interval)+1)
	for t := midnight.Add(-interval); t.Before(end); t = t.Add(interval) {
		instants = append(instants, t)
	}
	return instants
}

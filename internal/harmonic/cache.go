package harmonic

import (
	"context"
	"errors"
	"sync"

	"github.com/bbernstein/tidecal/internal/metrics"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/rs/zerolog/log"
)

// ModelStore fetches raw model documents. Implementations return
// ErrModelNotFound (possibly wrapped) on a miss.
type ModelStore interface {
	Load(ctx context.Context, stationID string) ([]byte, error)
}

// ModelCache memoizes decoded models by station id. A single mutex is held
// across the lookup and the load, so concurrent callers never fetch the same
// station twice. Entries live until Clear.
type ModelCache struct {
	store  ModelStore
	mu     sync.Mutex
	models map[string]*models.HarmonicModel
}

func NewModelCache(store ModelStore) *ModelCache {
	return &ModelCache{
		store:  store,
		models: make(map[string]*models.HarmonicModel),
	}
}

// Get returns the station's model, loading it on first use. Failed loads are
// not cached.
func (c *ModelCache) Get(ctx context.Context, stationID string) (*models.HarmonicModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if model, ok := c.models[stationID]; ok {
		metrics.IncModelLoad(metrics.ModelCached)
		return model, nil
	}

	data, err := c.store.Load(ctx, stationID)
	if err != nil {
		if errors.Is(err, ErrModelNotFound) {
			metrics.IncModelLoad(metrics.ModelNotFound)
			return nil, NewModelNotFoundError(stationID, err)
		}
		metrics.IncModelLoad(metrics.ModelInvalid)
		return nil, NewModelLoadError(stationID, err)
	}

	model, err := DecodeModel(stationID, data)
	if err != nil {
		metrics.IncModelLoad(metrics.ModelInvalid)
		return nil, err
	}

	c.models[stationID] = model
	metrics.IncModelLoad(metrics.ModelLoaded)
	log.Info().
		Str("station_id", stationID).
		Int("constituents", model.Constituents()).
		Msg("Loaded harmonic model")

	return model, nil
}

// Clear drops every cached model.
func (c *ModelCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = make(map[string]*models.HarmonicModel)
}

// Len returns the number of cached models.
func (c *ModelCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.models)
}

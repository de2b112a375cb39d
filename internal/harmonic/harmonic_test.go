package harmonic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("JST", 9*3600)

const validModel = `{
	"name": ["M2", "S2"],
	"A": [80.0, 30.0],
	"g": [150.0, 170.0],
	"aux": {"frq": [0.0805114, 0.0833333], "reftime": "2020-01-01T00:00:00Z", "lat": 35.28},
	"mean": 120.5
}`

type mockStore struct {
	mu       sync.Mutex
	docs     map[string]string
	loadErr  error
	loads    int
	loadFunc func(ctx context.Context, stationID string) ([]byte, error)
}

func (m *mockStore) Load(ctx context.Context, stationID string) ([]byte, error) {
	m.mu.Lock()
	m.loads++
	m.mu.Unlock()
	if m.loadFunc != nil {
		return m.loadFunc(ctx, stationID)
	}
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	doc, ok := m.docs[stationID]
	if !ok {
		return nil, fmt.Errorf("station %s: %w", stationID, ErrModelNotFound)
	}
	return []byte(doc), nil
}

func (m *mockStore) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

type mockZones map[string]*time.Location

func (z mockZones) ZoneFor(stationID string) *time.Location {
	return z[stationID]
}

type mockEngine struct {
	reconstructFunc func(instants []time.Time, model *models.HarmonicModel) ([]float64, error)
}

func (m *mockEngine) Reconstruct(instants []time.Time, model *models.HarmonicModel) ([]float64, error) {
	if m.reconstructFunc != nil {
		return m.reconstructFunc(instants, model)
	}
	out := make([]float64, len(instants))
	for i := range instants {
		out[i] = float64(i)
	}
	return out, nil
}

var testLocation = models.Location{ID: "yokosuka", Name: "Yokosuka", Latitude: 35.28, Longitude: 139.65, StationID: "QS"}

func newTestGateway(store *mockStore, engine Reconstructor, opts ...Option) *Gateway {
	return NewGateway(mockZones{"QS": jst}, NewModelCache(store), engine, opts...)
}

func TestDecodeModel(t *testing.T) {
	model, err := DecodeModel("QS", []byte(validModel))
	require.NoError(t, err)

	assert.Equal(t, "QS", model.StationID)
	assert.Equal(t, []string{"M2", "S2"}, model.Names)
	assert.Equal(t, []float64{80, 30}, model.Amplitudes)
	assert.Equal(t, []float64{150, 170}, model.Phases)
	assert.Equal(t, 120.5, model.Mean)
	assert.Equal(t, 35.28, model.Aux.Latitude)
	assert.Len(t, model.Aux.Frequencies, 2)
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(model.Aux.ReferenceTime))
}

func TestDecodeModelErrors(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantMissing []string
	}{
		{name: "not json", doc: "\x80\x04pickle"},
		{name: "missing mean and aux", doc: `{"name":["M2"],"A":[1],"g":[0]}`, wantMissing: []string{"aux", "mean"}},
		{name: "null amplitude", doc: `{"name":["M2"],"A":null,"g":[0],"aux":{},"mean":0}`, wantMissing: []string{"A"}},
		{name: "everything missing", doc: `{}`, wantMissing: []string{"name", "A", "g", "aux", "mean"}},
		{name: "length mismatch", doc: `{"name":["M2","S2"],"A":[1],"g":[0,0],"aux":{},"mean":0}`},
		{name: "no constituents", doc: `{"name":[],"A":[],"g":[],"aux":{},"mean":0}`},
		{name: "wrong type", doc: `{"name":"M2","A":[1],"g":[0],"aux":{},"mean":0}`},
		{name: "missing reference time", doc: `{"name":["M2"],"A":[80],"g":[0],"aux":{"lat":35},"mean":120}`, wantMissing: []string{"aux.reftime"}},
		{name: "frequency length mismatch", doc: `{"name":["M2","S2"],"A":[1,1],"g":[0,0],"aux":{"frq":[0.08],"reftime":"2020-01-01T00:00:00Z"},"mean":0}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeModel("QS", []byte(tt.doc))
			var loadErr *ModelLoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, "QS", loadErr.StationID)
			assert.Equal(t, tt.wantMissing, loadErr.MissingFields)
		})
	}
}

func TestModelCacheLoadsOnce(t *testing.T) {
	store := &mockStore{docs: map[string]string{"QS": validModel}}
	cache := NewModelCache(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]*models.HarmonicModel, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := cache.Get(ctx, "QS")
			assert.NoError(t, err)
			results[i] = m
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.loadCount())
	for _, m := range results {
		assert.Same(t, results[0], m)
	}
	assert.Equal(t, 1, cache.Len())
}

func TestModelCacheClear(t *testing.T) {
	store := &mockStore{docs: map[string]string{"QS": validModel}}
	cache := NewModelCache(store)
	ctx := context.Background()

	_, err := cache.Get(ctx, "QS")
	require.NoError(t, err)
	cache.Clear()
	assert.Equal(t, 0, cache.Len())

	_, err = cache.Get(ctx, "QS")
	require.NoError(t, err)
	assert.Equal(t, 2, store.loadCount())
}

func TestModelCacheErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("miss maps to ModelNotFoundError", func(t *testing.T) {
		cache := NewModelCache(&mockStore{docs: map[string]string{}})
		_, err := cache.Get(ctx, "ZZ")
		var notFound *ModelNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "ZZ", notFound.StationID)
		assert.ErrorIs(t, err, ErrModelNotFound)
	})

	t.Run("store failure maps to ModelLoadError", func(t *testing.T) {
		cache := NewModelCache(&mockStore{loadErr: errors.New("permission denied")})
		_, err := cache.Get(ctx, "QS")
		var loadErr *ModelLoadError
		require.True(t, errors.As(err, &loadErr))
	})

	t.Run("failures are not cached", func(t *testing.T) {
		store := &mockStore{docs: map[string]string{"QS": `{}`}}
		cache := NewModelCache(store)
		_, err := cache.Get(ctx, "QS")
		require.Error(t, err)
		_, err = cache.Get(ctx, "QS")
		require.Error(t, err)
		assert.Equal(t, 2, store.loadCount())
		assert.Equal(t, 0, cache.Len())
	})
}

func TestInstants(t *testing.T) {
	date := civil.Date{Year: 2026, Month: time.February, Day: 8}

	instants := Instants(date, jst, time.Hour)
	require.Len(t, instants, 25)
	assert.Equal(t, time.Date(2026, 2, 7, 23, 0, 0, 0, jst), instants[0])
	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, jst), instants[1])
	assert.Equal(t, time.Date(2026, 2, 8, 23, 0, 0, 0, jst), instants[24])
	for _, ts := range instants {
		assert.Equal(t, jst, ts.Location())
	}

	assert.Len(t, Instants(date, jst, 10*time.Minute), 145)
}

func TestPredict(t *testing.T) {
	store := &mockStore{docs: map[string]string{"QS": validModel}}
	gateway := newTestGateway(store, &mockEngine{})

	series, err := gateway.Predict(context.Background(), testLocation, civil.Date{Year: 2026, Month: time.February, Day: 8})
	require.NoError(t, err)
	require.Len(t, series, 25)

	for i, s := range series {
		assert.InDelta(t, 120.5+float64(i), s.HeightCM, 1e-9)
	}
	assert.Equal(t, time.Date(2026, 2, 7, 23, 0, 0, 0, jst), series[0].Time)
	assert.Equal(t, 1, store.loadCount())
}

func TestPredictWithInterval(t *testing.T) {
	store := &mockStore{docs: map[string]string{"QS": validModel}}
	gateway := newTestGateway(store, &mockEngine{}, WithInterval(30*time.Minute))

	series, err := gateway.Predict(context.Background(), testLocation, civil.Date{Year: 2026, Month: time.February, Day: 8})
	require.NoError(t, err)
	assert.Len(t, series, 49)
	assert.Equal(t, time.Date(2026, 2, 7, 23, 30, 0, 0, jst), series[0].Time)
}

func TestPredictErrors(t *testing.T) {
	date := civil.Date{Year: 2026, Month: time.February, Day: 8}
	engineErr := errors.New("solver exploded")

	t.Run("unknown station", func(t *testing.T) {
		store := &mockStore{docs: map[string]string{"QS": validModel}}
		loc := testLocation
		loc.StationID = "XX"
		_, err := newTestGateway(store, &mockEngine{}).Predict(context.Background(), loc, date)
		var unknown *UnknownStationError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "XX", unknown.StationID)
		assert.Equal(t, 0, store.loadCount())
	})

	t.Run("missing model", func(t *testing.T) {
		store := &mockStore{docs: map[string]string{}}
		_, err := newTestGateway(store, &mockEngine{}).Predict(context.Background(), testLocation, date)
		var notFound *ModelNotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("engine failure", func(t *testing.T) {
		store := &mockStore{docs: map[string]string{"QS": validModel}}
		engine := &mockEngine{reconstructFunc: func([]time.Time, *models.HarmonicModel) ([]float64, error) {
			return nil, engineErr
		}}
		_, err := newTestGateway(store, engine).Predict(context.Background(), testLocation, date)
		var predErr *PredictionError
		require.True(t, errors.As(err, &predErr))
		assert.ErrorIs(t, err, engineErr)
	})

	t.Run("engine length mismatch", func(t *testing.T) {
		store := &mockStore{docs: map[string]string{"QS": validModel}}
		engine := &mockEngine{reconstructFunc: func(instants []time.Time, _ *models.HarmonicModel) ([]float64, error) {
			return make([]float64, len(instants)-1), nil
		}}
		_, err := newTestGateway(store, engine).Predict(context.Background(), testLocation, date)
		var predErr *PredictionError
		assert.True(t, errors.As(err, &predErr))
	})
}

func TestPredictSharesModelAcrossLocations(t *testing.T) {
	store := &mockStore{docs: map[string]string{"QS": validModel}}
	gateway := newTestGateway(store, &mockEngine{})
	date := civil.Date{Year: 2026, Month: time.February, Day: 8}

	other := testLocation
	other.ID = "kannonzaki"

	_, err := gateway.Predict(context.Background(), testLocation, date)
	require.NoError(t, err)
	_, err = gateway.Predict(context.Background(), other, date.AddDays(1))
	require.NoError(t, err)
	assert.Equal(t, 1, store.loadCount())
}

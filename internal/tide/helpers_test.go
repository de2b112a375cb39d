package tide

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
)

var jst = time.FixedZone("JST", 9*3600)

func day(year int, month time.Month, d int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: d}
}

// hourly builds a series starting at start with one sample per hour.
func hourly(start time.Time, heights ...float64) []models.HeightSample {
	series := make([]models.HeightSample, len(heights))
	for i, h := range heights {
		series[i] = models.HeightSample{Time: start.Add(time.Duration(i) * time.Hour), HeightCM: h}
	}
	return series
}

type knot struct {
	hour   float64
	height float64
}

// semidiurnalKnots puts highs at 03:00 and 15:00 and lows at 09:00 and 21:00.
var semidiurnalKnots = []knot{
	{-3, 55}, {3, 150}, {9, 50}, {15, 160}, {21, 55}, {27, 150},
}

func interpolate(knots []knot, hour float64) float64 {
	for i := 1; i < len(knots); i++ {
		if hour <= knots[i].hour {
			a, b := knots[i-1], knots[i]
			return a.height + (hour-a.hour)/(b.hour-a.hour)*(b.height-a.height)
		}
	}
	return knots[len(knots)-1].height
}

// dailySeries samples knots hourly from 23:00 the previous day through 23:00.
func dailySeries(date civil.Date, knots []knot) []models.HeightSample {
	midnight := date.In(jst)
	series := make([]models.HeightSample, 0, 25)
	for h := -1; h <= 23; h++ {
		series = append(series, models.HeightSample{
			Time:     midnight.Add(time.Duration(h) * time.Hour),
			HeightCM: interpolate(knots, float64(h)),
		})
	}
	return series
}

func sineSeries(start time.Time, span, step, period time.Duration, mean, amplitude float64) []models.HeightSample {
	var series []models.HeightSample
	for t := time.Duration(0); t <= span; t += step {
		phase := 2 * math.Pi * float64(t) / float64(period)
		series = append(series, models.HeightSample{
			Time:     start.Add(t),
			HeightCM: mean + amplitude*math.Cos(phase+0.3),
		})
	}
	return series
}

type mockPredictor struct {
	predictFunc func(ctx context.Context, loc models.Location, date civil.Date) ([]models.HeightSample, error)
	mu          sync.Mutex
	calls       []civil.Date
}

func (m *mockPredictor) Predict(ctx context.Context, loc models.Location, date civil.Date) ([]models.HeightSample, error) {
	m.mu.Lock()
	m.calls = append(m.calls, date)
	m.mu.Unlock()
	if m.predictFunc != nil {
		return m.predictFunc(ctx, loc, date)
	}
	return dailySeries(date, semidiurnalKnots), nil
}

func (m *mockPredictor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockCache struct {
	mu       sync.Mutex
	tides    map[string]*models.Tide
	getErr   error
	saveErr  error
	batchErr error
	saves    int
	batches  [][]*models.Tide
}

func newMockCache() *mockCache {
	return &mockCache{tides: make(map[string]*models.Tide)}
}

func cacheKey(locationID string, date civil.Date) string {
	return fmt.Sprintf("%s:%s", locationID, date)
}

func (m *mockCache) GetTide(_ context.Context, locationID string, date civil.Date) (*models.Tide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.tides[cacheKey(locationID, date)], nil
}

func (m *mockCache) SaveTide(_ context.Context, locationID string, tide *models.Tide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tides[cacheKey(locationID, tide.Date)] = tide
	return nil
}

func (m *mockCache) SaveTidesBatch(_ context.Context, locationID string, tides []*models.Tide) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, tides)
	if m.batchErr != nil {
		return m.batchErr
	}
	for _, tide := range tides {
		m.tides[cacheKey(locationID, tide.Date)] = tide
	}
	return nil
}

func (m *mockCache) GetCacheStats() map[string]uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]uint64{"entries": uint64(len(m.tides))}
}

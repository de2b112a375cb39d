package handler

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
)

var jst = time.FixedZone("JST", 9*3600)

// mockStationFinder implements station.StationFinder for testing
type mockStationFinder struct {
	findStationFn         func(ctx context.Context, stationID string) (*models.Station, error)
	findNearestStationsFn func(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error)
}

func (m *mockStationFinder) FindStation(ctx context.Context, stationID string) (*models.Station, error) {
	if m.findStationFn != nil {
		return m.findStationFn(ctx, stationID)
	}
	return nil, nil
}

func (m *mockStationFinder) FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error) {
	if m.findNearestStationsFn != nil {
		return m.findNearestStationsFn(ctx, lat, lon, limit)
	}
	return nil, nil
}

// mockTideService implements tide.TideService for testing
type mockTideService struct {
	getTideFn         func(ctx context.Context, loc models.Location, date civil.Date) (*models.Tide, error)
	getDailySummaryFn func(ctx context.Context, loc models.Location, date civil.Date) (*models.DailySummary, error)
}

func (m *mockTideService) GetTide(ctx context.Context, loc models.Location, date civil.Date) (*models.Tide, error) {
	if m.getTideFn != nil {
		return m.getTideFn(ctx, loc, date)
	}
	return nil, nil
}

func (m *mockTideService) GetDailySummary(ctx context.Context, loc models.Location, date civil.Date) (*models.DailySummary, error) {
	if m.getDailySummaryFn != nil {
		return m.getDailySummaryFn(ctx, loc, date)
	}
	return nil, nil
}

func createTestStation(id string) models.Station {
	return models.Station{
		ID:               id,
		Name:             "Test Station " + id,
		Latitude:         35.65,
		Longitude:        139.767,
		Source:           models.SourceJMA,
		TimeZoneOffset:   9 * 3600,
		ReferenceLevelCM: -188.4,
	}
}

func createTestTide(date civil.Date) *models.Tide {
	at := func(hour int) time.Time {
		return time.Date(date.Year, date.Month, date.Day, hour, 0, 0, 0, jst)
	}
	tide, err := models.NewTide(date, models.TideNeap, []models.TideEvent{
		{Time: at(3), HeightCM: 150, Kind: models.EventHigh},
		{Time: at(9), HeightCM: 50, Kind: models.EventLow},
	}, &models.PrimeWindow{Start: at(1), End: at(5)})
	if err != nil {
		panic(err)
	}
	return tide
}

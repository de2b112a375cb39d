package station

import (
	"context"
	"errors"

	"github.com/bbernstein/tidecal/internal/models"
)

var ErrStationNotFound = errors.New("station not found")

// StationFinder defines the interface for finding stations
type StationFinder interface {
	FindStation(ctx context.Context, stationID string) (*models.Station, error)
	FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error)
}

var _ StationFinder = (*Finder)(nil)

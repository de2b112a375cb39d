// internal/tide/interface.go
package tide

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
)

type TideService interface {
	GetTide(ctx context.Context, loc models.Location, date civil.Date) (*models.Tide, error)
	GetDailySummary(ctx context.Context, loc models.Location, date civil.Date) (*models.DailySummary, error)
}

// Predictor produces a height series covering a location's calendar day.
type Predictor interface {
	Predict(ctx context.Context, loc models.Location, date civil.Date) ([]models.HeightSample, error)
}

// CacheProvider stores computed aggregates. A miss is (nil, nil).
type CacheProvider interface {
	GetTide(ctx context.Context, locationID string, date civil.Date) (*models.Tide, error)
	SaveTide(ctx context.Context, locationID string, tide *models.Tide) error
	SaveTidesBatch(ctx context.Context, locationID string, tides []*models.Tide) error
	GetCacheStats() map[string]uint64
}

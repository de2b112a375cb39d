package tide

import (
	"github.com/bbernstein/tidecal/internal/models"
	"gonum.org/v1/gonum/floats"
)

// Range returns the highest high minus the lowest low. ok is false when the
// events lack either kind, in which case the range is 0.
func Range(events []models.TideEvent) (rangeCM float64, ok bool) {
	var highs, lows []float64
	for _, e := range events {
		switch e.Kind {
		case models.EventHigh:
			highs = append(highs, e.HeightCM)
		case models.EventLow:
			lows = append(lows, e.HeightCM)
		}
	}
	if len(highs) == 0 || len(lows) == 0 {
		return 0, false
	}
	return floats.Max(highs) - floats.Min(lows), true
}

package tide

import (
	"time"

	"github.com/bbernstein/tidecal/internal/models"
)

// PrimeWindowHalfWidth is how far the prime window extends on each side of a
// high tide.
const PrimeWindowHalfWidth = 2 * time.Hour

// FindPrimeWindow returns the window around the earliest high tide, or nil if
// there is none. Equal times keep the first in input order. The window is not
// clipped to the calendar day.
func FindPrimeWindow(events []models.TideEvent) *models.PrimeWindow {
	var earliest *models.TideEvent
	for i := range events {
		e := &events[i]
		if e.Kind != models.EventHigh {
			continue
		}
		if earliest == nil || e.Time.Before(earliest.Time) {
			earliest = e
		}
	}
	if earliest == nil {
		return nil
	}
	w := windowAround(earliest.Time)
	return &w
}

func windowAround(t time.Time) models.PrimeWindow {
	return models.PrimeWindow{
		Start: t.Add(-PrimeWindowHalfWidth),
		End:   t.Add(PrimeWindowHalfWidth),
	}
}

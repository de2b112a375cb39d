package tide

import (
	"time"

	"github.com/bbernstein/tidecal/internal/metrics"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/rs/zerolog/log"
)

// ExtractEvents finds the highs and lows of a chronological height series.
//
// A strict local maximum is a high and a strict local minimum a low. A run of
// equal samples bounded by a rise and a fall (or a fall and a rise) yields a
// single event at its middle sample; runs touching either end of the series
// yield nothing. Candidates with heights outside the valid range are dropped.
// Fewer than three samples produce no events.
func ExtractEvents(series []models.HeightSample) []models.TideEvent {
	if len(series) < 3 {
		log.Debug().Int("points", len(series)).Msg("Insufficient data points for extraction")
		return []models.TideEvent{}
	}

	events := make([]models.TideEvent, 0, 4)
	last := len(series) - 1
	prevSign := trendSign(series[1].HeightCM - series[0].HeightCM)

	for i := 1; i < last; {
		currSign := trendSign(series[i+1].HeightCM - series[i].HeightCM)

		if currSign == 0 {
			start := i
			for i < last && trendSign(series[i+1].HeightCM-series[i].HeightCM) == 0 {
				i++
			}
			if i >= last {
				break
			}
			nextSign := trendSign(series[i+1].HeightCM - series[i].HeightCM)
			mid := series[(start+i)/2]
			switch {
			case prevSign > 0 && nextSign < 0:
				events = appendIfValid(events, mid.Time, mid.HeightCM, models.EventHigh)
			case prevSign < 0 && nextSign > 0:
				events = appendIfValid(events, mid.Time, mid.HeightCM, models.EventLow)
			}
			prevSign = nextSign
			i++
			continue
		}

		switch {
		case prevSign > 0 && currSign < 0:
			events = appendIfValid(events, series[i].Time, series[i].HeightCM, models.EventHigh)
		case prevSign < 0 && currSign > 0:
			events = appendIfValid(events, series[i].Time, series[i].HeightCM, models.EventLow)
		}
		prevSign = currSign
		i++
	}

	return events
}

func appendIfValid(events []models.TideEvent, t time.Time, heightCM float64, kind models.EventKind) []models.TideEvent {
	if heightCM < models.MinHeightCM || heightCM > models.MaxHeightCM {
		log.Warn().
			Time("time", t).
			Float64("height_cm", heightCM).
			Str("kind", string(kind)).
			Msg("Skipping out of range tide height")
		metrics.IncAnomalousExtrema(string(kind))
		return events
	}
	return append(events, models.TideEvent{Time: t, HeightCM: heightCM, Kind: kind})
}

func trendSign(delta float64) int {
	switch {
	case delta > 0:
		return 1
	case delta < 0:
		return -1
	default:
		return 0
	}
}

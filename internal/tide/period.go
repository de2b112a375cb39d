package tide

import (
	"sort"

	"cloud.google.com/go/civil"
	"github.com/bbernstein/tidecal/internal/models"
)

// DayType pairs a calendar date with its classified tide type
type DayType struct {
	Date civil.Date
	Type models.TideType
}

// Run is a maximal stretch of consecutive days sharing one tide type
type Run struct {
	Start civil.Date
	End   civil.Date
	Type  models.TideType
}

// Len returns the number of days in the run, both ends included.
func (r Run) Len() int {
	return r.End.DaysSince(r.Start) + 1
}

// Midpoint is the middle day of the run; for an even length, the earlier of
// the two middle days.
func (r Run) Midpoint() civil.Date {
	return r.Start.AddDays((r.Len() - 1) / 2)
}

// FindRun returns the run containing target. Days may be given in any order;
// when a date repeats, its first occurrence wins. A missing calendar day ends
// a run. ok is false when target is absent.
func FindRun(target civil.Date, days []DayType) (run Run, ok bool) {
	sorted := dedupeByDate(days)

	idx := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].Date.Before(target)
	})
	if idx == len(sorted) || sorted[idx].Date != target {
		return Run{}, false
	}

	tideType := sorted[idx].Type
	run = Run{Start: target, End: target, Type: tideType}

	for i := idx + 1; i < len(sorted); i++ {
		if sorted[i].Type != tideType || sorted[i].Date != run.End.AddDays(1) {
			break
		}
		run.End = sorted[i].Date
	}
	for i := idx - 1; i >= 0; i-- {
		if sorted[i].Type != tideType || sorted[i].Date != run.Start.AddDays(-1) {
			break
		}
		run.Start = sorted[i].Date
	}

	return run, true
}

// IsMidpoint reports whether target is the middle day of its run. It is false
// when target is not among days.
func IsMidpoint(target civil.Date, days []DayType) bool {
	run, ok := FindRun(target, days)
	if !ok {
		return false
	}
	return run.Midpoint() == target
}

func dedupeByDate(days []DayType) []DayType {
	sorted := make([]DayType, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := sorted[:0]
	for _, d := range sorted {
		if len(out) > 0 && d.Date == out[len(out)-1].Date {
			continue
		}
		out = append(out, d)
	}
	return out
}

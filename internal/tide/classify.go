package tide

import (
	"math"

	"github.com/bbernstein/tidecal/internal/models"
	"github.com/bbernstein/tidecal/internal/moon"
)

const (
	// LargeRangeCM promotes a moderate day to spring.
	LargeRangeCM = 180.0
	// SmallRangeCM demotes a spring day to moderate.
	SmallRangeCM = 80.0
)

// Classify assigns a tide type from the day's range and the moon age. The
// moon age picks a base type, then an extreme range corrects it by at most
// one step.
func Classify(rangeCM, moonAge float64) (models.TideType, error) {
	if math.IsNaN(rangeCM) || rangeCM < 0 {
		return 0, models.NewValidationError("rangeCm", "must be non-negative, got %v", rangeCM)
	}
	base, err := ClassifyByMoonAge(moonAge)
	if err != nil {
		return 0, err
	}

	switch {
	case rangeCM >= LargeRangeCM && base == models.TideModerate:
		return models.TideSpring, nil
	case rangeCM < SmallRangeCM && base == models.TideSpring:
		return models.TideModerate, nil
	}
	return base, nil
}

// ClassifyByMoonAge returns the base tide type for a moon age in
// [0, moon.SynodicMonth).
func ClassifyByMoonAge(age float64) (models.TideType, error) {
	if math.IsNaN(age) || age < 0 || age >= moon.SynodicMonth {
		return 0, models.NewValidationError("moonAge", "must be in [0, %v), got %v", moon.SynodicMonth, age)
	}

	switch {
	case age <= 3, age >= 12 && age <= 18, age >= 26.5:
		return models.TideSpring, nil
	case age >= 5 && age < 8, age >= 20 && age < 23:
		return models.TideNeap, nil
	case age >= 8 && age < 9, age >= 23 && age < 24:
		return models.TideLong, nil
	case age >= 9 && age < 10, age >= 24 && age < 25:
		return models.TideYoung, nil
	}
	return models.TideModerate, nil
}

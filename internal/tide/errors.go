package tide

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	// ErrInsufficientData means the predicted series had fewer than three
	// points, too short to locate any extremum.
	ErrInsufficientData = errors.New("insufficient tide data")

	// ErrNoExtrema means the series was long enough but no high or low
	// survived extraction.
	ErrNoExtrema = errors.New("no tide extrema found")
)

// DataError ties a data-quality failure to the location and date it occurred on
type DataError struct {
	LocationID string
	Date       civil.Date
	Err        error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("tide data for %s on %s: %v", e.LocationID, e.Date, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new data error
func NewDataError(locationID string, date civil.Date, err error) *DataError {
	return &DataError{
		LocationID: locationID,
		Date:       date,
		Err:        err,
	}
}

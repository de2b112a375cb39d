package harmonic

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelNotFound is returned by a ModelStore when it holds no model for the
// requested station.
var ErrModelNotFound = errors.New("harmonic model not found")

// UnknownStationError means the station has no entry in the catalog
type UnknownStationError struct {
	StationID string
}

func (e *UnknownStationError) Error() string {
	return fmt.Sprintf("unknown station: %s", e.StationID)
}

func NewUnknownStationError(stationID string) *UnknownStationError {
	return &UnknownStationError{StationID: stationID}
}

// ModelNotFoundError means no harmonic model exists for the station. The
// station has to be solved offline before it can be predicted.
type ModelNotFoundError struct {
	StationID string
	Err       error
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("no harmonic model for station %s", e.StationID)
}

func (e *ModelNotFoundError) Unwrap() error {
	return e.Err
}

func NewModelNotFoundError(stationID string, err error) *ModelNotFoundError {
	return &ModelNotFoundError{StationID: stationID, Err: err}
}

// ModelLoadError means a model exists but could not be read or is missing
// required fields
type ModelLoadError struct {
	StationID     string
	MissingFields []string
	Err           error
}

func (e *ModelLoadError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("loading harmonic model for station %s: missing fields: %s",
			e.StationID, strings.Join(e.MissingFields, ", "))
	}
	return fmt.Sprintf("loading harmonic model for station %s: %v", e.StationID, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

func NewModelLoadError(stationID string, err error) *ModelLoadError {
	return &ModelLoadError{StationID: stationID, Err: err}
}

// PredictionError wraps a failure of the reconstruction engine
type PredictionError struct {
	StationID string
	Message   string
	Err       error
}

func (e *PredictionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("predicting station %s: %s: %v", e.StationID, e.Message, e.Err)
	}
	return fmt.Sprintf("predicting station %s: %s", e.StationID, e.Message)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

func NewPredictionError(stationID, message string, err error) *PredictionError {
	return &PredictionError{StationID: stationID, Message: message, Err: err}
}

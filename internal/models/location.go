package models

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Location is a configured fishing spot. ID is stable and drives every derived
// identifier, so renaming a location never changes them.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StationID string  `json:"stationId"`
}

// NewLocation creates a validated location
func NewLocation(id, name string, lat, lon float64, stationID string) (Location, error) {
	loc := Location{
		ID:        id,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		StationID: stationID,
	}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// Validate checks if a Location's fields are valid
func (l Location) Validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return NewValidationError("id", "must not be empty")
	}
	if strings.TrimSpace(l.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(l.StationID) == "" {
		return NewValidationError("stationId", "must not be empty")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return NewValidationError("latitude", "must be between -90 and 90, got %v", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return NewValidationError("longitude", "must be between -180 and 180, got %v", l.Longitude)
	}
	return nil
}

// LocationFromStation builds a location that uses the station itself as the spot.
func LocationFromStation(s Station) Location {
	return Location{
		ID:        strings.ToLower(s.ID),
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		StationID: s.ID,
	}
}

var summaryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://tidecal/summaries"))

// SummaryID returns a stable identifier for a location's summary on a date: 32
// lowercase hex characters, which calendar APIs accept as an event id.
func SummaryID(locationID string, date civil.Date) string {
	id := uuid.NewMD5(summaryNamespace, []byte(locationID+"_"+date.String()))
	return strings.ReplaceAll(id.String(), "-", "")
}

package models

type Source string

const (
	SourceJMA  Source = "JMA"
	SourceNOAA Source = "NOAA"
)

// Station is a tide-gauge station with a harmonic model. TimeZoneOffset is
// the station's fixed offset from UTC in seconds; model instants are
// expressed in that zone.
type Station struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Distance         float64 `json:"distance"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Source           Source  `json:"source"`
	TimeZoneOffset   int     `json:"timeZoneOffset"`
	ReferenceLevelCM float64 `json:"referenceLevelCm"`
}

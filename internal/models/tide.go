package models

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

const (
	MinHeightCM = 0.0
	MaxHeightCM = 500.0
)

// TideType is the tide-cycle category of a day
type TideType int

const (
	TideSpring TideType = iota
	TideModerate
	TideNeap
	TideLong
	TideYoung
)

var tideTypeNames = [...]string{
	TideSpring:   "spring",
	TideModerate: "moderate",
	TideNeap:     "neap",
	TideLong:     "long",
	TideYoung:    "young",
}

var tideTypeGlyphs = [...]string{
	TideSpring:   "🔴",
	TideModerate: "🟠",
	TideNeap:     "🔵",
	TideLong:     "⚪",
	TideYoung:    "🟢",
}

// TideTypes lists every variant.
var TideTypes = []TideType{TideSpring, TideModerate, TideNeap, TideLong, TideYoung}

func (t TideType) Valid() bool {
	return t >= TideSpring && t <= TideYoung
}

func (t TideType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TideType(%d)", int(t))
	}
	return tideTypeNames[t]
}

// Glyph returns the display glyph used in calendar titles.
func (t TideType) Glyph() string {
	if !t.Valid() {
		return ""
	}
	return tideTypeGlyphs[t]
}

// ParseTideType is the inverse of String.
func ParseTideType(s string) (TideType, error) {
	for _, t := range TideTypes {
		if tideTypeNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("invalid tide type: %q", s)
}

func (t TideType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid tide type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TideType) UnmarshalText(text []byte) error {
	parsed, err := ParseTideType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EventKind distinguishes high and low water
type EventKind string

const (
	EventHigh EventKind = "high"
	EventLow  EventKind = "low"
)

func (k EventKind) Valid() bool {
	return k == EventHigh || k == EventLow
}

// TideEvent represents a single high or low water
type TideEvent struct {
	Time     time.Time `json:"time"`
	HeightCM float64   `json:"heightCm"`
	Kind     EventKind `json:"kind"`
}

// NewTideEvent creates a validated tide event
func NewTideEvent(t time.Time, heightCM float64, kind EventKind) (TideEvent, error) {
	e := TideEvent{Time: t, HeightCM: heightCM, Kind: kind}
	if err := e.Validate(); err != nil {
		return TideEvent{}, err
	}
	return e, nil
}

// Validate checks if a TideEvent's fields are valid
func (e TideEvent) Validate() error {
	if e.Time.IsZero() {
		return NewValidationError("time", "must be set")
	}
	if e.HeightCM < MinHeightCM || e.HeightCM > MaxHeightCM {
		return NewValidationError("heightCm", "must be between %v and %v, got %v", MinHeightCM, MaxHeightCM, e.HeightCM)
	}
	if !e.Kind.Valid() {
		return NewValidationError("kind", "must be %q or %q, got %q", EventHigh, EventLow, e.Kind)
	}
	return nil
}

// PrimeWindow is the favorable interval around a high tide. It may cross
// midnight in either direction.
type PrimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w PrimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Tide is the daily aggregate. Build it with NewTide.
type Tide struct {
	Date        civil.Date   `json:"date"`
	Type        TideType     `json:"tideType"`
	Events      []TideEvent  `json:"events"`
	PrimeWindow *PrimeWindow `json:"primeWindow,omitempty"`
}

// NewTide validates and assembles a daily aggregate. Events must be non-empty
// and strictly chronological; a prime window, when present, must have Start
// before End.
func NewTide(date civil.Date, tideType TideType, events []TideEvent, window *PrimeWindow) (*Tide, error) {
	if !date.IsValid() {
		return nil, NewValidationError("date", "invalid date %v", date)
	}
	if !tideType.Valid() {
		return nil, NewValidationError("tideType", "unknown tide type %d", int(tideType))
	}
	if len(events) == 0 {
		return nil, NewValidationError("events", "must not be empty")
	}
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("event at index %d: %w", i, err)
		}
		if i > 0 && !events[i-1].Time.Before(e.Time) {
			return nil, NewValidationError("events", "must be in chronological order: %s >= %s",
				events[i-1].Time.Format(time.RFC3339), e.Time.Format(time.RFC3339))
		}
	}

	var w *PrimeWindow
	if window != nil {
		if !window.Start.Before(window.End) {
			return nil, NewValidationError("primeWindow", "start must be before end: %s >= %s",
				window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
		}
		copied := *window
		w = &copied
	}

	return &Tide{
		Date:        date,
		Type:        tideType,
		Events:      append([]TideEvent(nil), events...),
		PrimeWindow: w,
	}, nil
}

// HeightSample is one point of a predicted height series
type HeightSample struct {
	Time     time.Time
	HeightCM float64
}

// DailySummary is a day's aggregate annotated with its period position
type DailySummary struct {
	ID         string `json:"id"`
	LocationID string `json:"locationId"`
	Tide       *Tide  `json:"tide"`
	IsMidpoint bool   `json:"isMidpoint"`
}

package models

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// TideRecord is the persisted form of a Tide, keyed by location and date
type TideRecord struct {
	LocationID  string        `dynamodbav:"locationId"`
	Date        string        `dynamodbav:"date"` // Format: YYYY-MM-DD
	TideType    string        `dynamodbav:"tideType"`
	Events      []EventRecord `dynamodbav:"events"`
	PrimeStart  string        `dynamodbav:"primeStart,omitempty"`
	PrimeEnd    string        `dynamodbav:"primeEnd,omitempty"`
	LastUpdated int64         `dynamodbav:"lastUpdated"`
	TTL         int64         `dynamodbav:"ttl"`
}

type EventRecord struct {
	Time     string  `dynamodbav:"time"` // RFC3339 with the station offset
	HeightCM float64 `dynamodbav:"heightCm"`
	Kind     string  `dynamodbav:"kind"`
}

// NewTideRecord converts an aggregate to its persisted form
func NewTideRecord(locationID string, t *Tide) TideRecord {
	record := TideRecord{
		LocationID: locationID,
		Date:       t.Date.String(),
		TideType:   t.Type.String(),
		Events:     make([]EventRecord, len(t.Events)),
	}
	for i, e := range t.Events {
		record.Events[i] = EventRecord{
			Time:     e.Time.Format(time.RFC3339),
			HeightCM: e.HeightCM,
			Kind:     string(e.Kind),
		}
	}
	if t.PrimeWindow != nil {
		record.PrimeStart = t.PrimeWindow.Start.Format(time.RFC3339)
		record.PrimeEnd = t.PrimeWindow.End.Format(time.RFC3339)
	}
	return record
}

// Validate checks if a TideRecord's fields are valid
func (r *TideRecord) Validate() error {
	_, _, err := r.parse()
	return err
}

// parse validates the record and returns its decoded date and type.
func (r *TideRecord) parse() (civil.Date, TideType, error) {
	if r.LocationID == "" {
		return civil.Date{}, 0, fmt.Errorf("location ID is required")
	}
	if r.Date == "" {
		return civil.Date{}, 0, fmt.Errorf("date is required")
	}
	date, err := civil.ParseDate(r.Date)
	if err != nil {
		return civil.Date{}, 0, fmt.Errorf("invalid date format: %s", r.Date)
	}
	tideType, err := ParseTideType(r.TideType)
	if err != nil {
		return civil.Date{}, 0, err
	}
	if (r.PrimeStart == "") != (r.PrimeEnd == "") {
		return civil.Date{}, 0, fmt.Errorf("prime window must have both start and end")
	}
	return date, tideType, nil
}

// ToTide rebuilds the aggregate, re-running every constructor check.
func (r *TideRecord) ToTide() (*Tide, error) {
	date, tideType, err := r.parse()
	if err != nil {
		return nil, err
	}

	events := make([]TideEvent, len(r.Events))
	for i, er := range r.Events {
		ts, err := time.Parse(time.RFC3339, er.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid event time at index %d: %w", i, err)
		}
		e, err := NewTideEvent(ts, er.HeightCM, EventKind(er.Kind))
		if err != nil {
			return nil, fmt.Errorf("invalid event at index %d: %w", i, err)
		}
		events[i] = e
	}

	var window *PrimeWindow
	if r.PrimeStart != "" {
		start, err := time.Parse(time.RFC3339, r.PrimeStart)
		if err != nil {
			return nil, fmt.Errorf("invalid prime window start: %w", err)
		}
		end, err := time.Parse(time.RFC3339, r.PrimeEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid prime window end: %w", err)
		}
		window = &PrimeWindow{Start: start, End: end}
	}

	return NewTide(date, tideType, events, window)
}

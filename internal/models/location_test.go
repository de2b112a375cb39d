package models

import (
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        string
		locName   string
		lat, lon  float64
		stationID string
		wantErr   bool
	}{
		{name: "valid", id: "yokosuka", locName: "Yokosuka", lat: 35.28, lon: 139.65, stationID: "QS"},
		{name: "empty id", id: " ", locName: "Yokosuka", lat: 35.28, lon: 139.65, stationID: "QS", wantErr: true},
		{name: "empty name", id: "yokosuka", locName: "", lat: 35.28, lon: 139.65, stationID: "QS", wantErr: true},
		{name: "empty station", id: "yokosuka", locName: "Yokosuka", lat: 35.28, lon: 139.65, wantErr: true},
		{name: "latitude out of range", id: "x", locName: "X", lat: 91, lon: 0, stationID: "QS", wantErr: true},
		{name: "longitude out of range", id: "x", locName: "X", lat: 0, lon: -181, stationID: "QS", wantErr: true},
		{name: "boundary coordinates", id: "x", locName: "X", lat: -90, lon: 180, stationID: "QS"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			loc, err := NewLocation(tt.id, tt.locName, tt.lat, tt.lon, tt.stationID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, loc.ID)
			assert.Equal(t, tt.stationID, loc.StationID)
		})
	}
}

func TestSummaryID(t *testing.T) {
	t.Parallel()

	date := civil.Date{Year: 2026, Month: time.February, Day: 8}

	id := SummaryID("yokosuka", date)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), id)
	assert.Equal(t, id, SummaryID("yokosuka", date))
	assert.NotEqual(t, id, SummaryID("yokosuka", date.AddDays(1)))
	assert.NotEqual(t, id, SummaryID("tokyo", date))
}

func TestLocationFromStation(t *testing.T) {
	t.Parallel()

	loc := LocationFromStation(Station{ID: "TK", Name: "Tokyo", Latitude: 35.65, Longitude: 139.77})
	assert.Equal(t, "tk", loc.ID)
	assert.Equal(t, "TK", loc.StationID)
	assert.NoError(t, loc.Validate())
}

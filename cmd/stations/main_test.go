package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/tidecal/internal/api"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRequest(t *testing.T) {
	tests := []struct {
		name           string
		params         map[string]string
		expectedStatus int
		expectedFirst  string
	}{
		{
			name:           "station by id",
			params:         map[string]string{"stationId": "TK"},
			expectedStatus: http.StatusOK,
			expectedFirst:  "TK",
		},
		{
			name:           "nearest to Osaka Bay",
			params:         map[string]string{"lat": "34.6", "lon": "135.4", "limit": "2"},
			expectedStatus: http.StatusOK,
			expectedFirst:  "OS",
		},
		{
			name:           "unknown station",
			params:         map[string]string{"stationId": "ZZ"},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
				QueryStringParameters: tt.params,
			})
			require.NoError(t, err)
			require.Equal(t, tt.expectedStatus, resp.StatusCode, resp.Body)
			if tt.expectedFirst == "" {
				return
			}

			var body api.StationsResponse
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			require.NotEmpty(t, body.Stations)
			assert.Equal(t, tt.expectedFirst, body.Stations[0].ID)
		})
	}
}

func TestNewStationFinder_BuiltIn(t *testing.T) {
	finder := newStationFinder(context.Background(), config.New(), &config.CacheConfig{StationListTTLDays: 7})
	st, err := finder.FindStation(context.Background(), "NH")
	require.NoError(t, err)
	assert.Equal(t, "Naha", st.Name)
}

func TestMain_StartsLambda(t *testing.T) {
	original := lambdaStart
	defer func() { lambdaStart = original }()

	var started interface{}
	lambdaStart = func(h interface{}) { started = h }

	main()
	assert.NotNil(t, started)
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/tidecal/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type StationsResponse struct {
	APIResponse
	Stations []models.Station `json:"stations"`
}

type TideResponse struct {
	APIResponse
	Station models.Station `json:"station"`
	Tide    *models.Tide   `json:"tide"`
}

type SummaryResponse struct {
	APIResponse
	Station models.Station       `json:"station"`
	Summary *models.DailySummary `json:"summary"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewStationsResponse(stations []models.Station) *StationsResponse {
	return &StationsResponse{
		APIResponse: APIResponse{ResponseType: "stations"},
		Stations:    stations,
	}
}

func NewTideResponse(station models.Station, tide *models.Tide) *TideResponse {
	return &TideResponse{
		APIResponse: APIResponse{ResponseType: "tide"},
		Station:     station,
		Tide:        tide,
	}
}

func NewSummaryResponse(station models.Station, summary *models.DailySummary) *SummaryResponse {
	return &SummaryResponse{
		APIResponse: APIResponse{ResponseType: "summary"},
		Station:     station,
		Summary:     summary,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// HasCoordinates reports whether both lat and lon were supplied
func HasCoordinates(params map[string]string) bool {
	_, hasLat := params["lat"]
	_, hasLon := params["lon"]
	return hasLat && hasLon
}

// Parameter parsing helpers
func ParseCoordinates(params map[string]string) (float64, float64, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return 0, 0, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, err
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, err
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, InvalidCoordinatesError{}
	}

	return lat, lon, nil
}

// ParseDate reads the "date" parameter (YYYY-MM-DD). Without one it returns
// the calendar date of now in zone.
func ParseDate(params map[string]string, now time.Time, zone *time.Location) (civil.Date, error) {
	dateStr, ok := params["date"]
	if !ok || dateStr == "" {
		if zone == nil {
			zone = time.UTC
		}
		return civil.DateOf(now.In(zone)), nil
	}

	date, err := civil.ParseDate(dateStr)
	if err != nil {
		return civil.Date{}, InvalidDateError{Value: dateStr}
	}
	return date, nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("Invalid date: %s (expected YYYY-MM-DD)", e.Value)
}

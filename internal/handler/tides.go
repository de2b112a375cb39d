package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/tidecal/internal/api"
	"github.com/bbernstein/tidecal/internal/harmonic"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/bbernstein/tidecal/internal/station"
	"github.com/bbernstein/tidecal/internal/tide"
	"github.com/rs/zerolog/log"
)

// TidesHandler serves the classified tide of one station-day. The station is
// chosen by stationId or as the nearest to lat/lon; summary=true adds the
// period midpoint flag.
type TidesHandler struct {
	stationFinder station.StationFinder
	tideService   tide.TideService
	now           func() time.Time
}

func NewTidesHandler(finder station.StationFinder, service tide.TideService) *TidesHandler {
	return &TidesHandler{
		stationFinder: finder,
		tideService:   service,
		now:           time.Now,
	}
}

func (h *TidesHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	st, resp, ok := h.resolveStation(ctx, params)
	if !ok {
		return resp, nil
	}

	zone := time.FixedZone(st.ID, st.TimeZoneOffset)
	date, err := api.ParseDate(params, h.now(), zone)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	loc := models.LocationFromStation(*st)

	if params["summary"] == "true" {
		summary, err := h.tideService.GetDailySummary(ctx, loc, date)
		if err != nil {
			return errorResponse(err, loc, date.String())
		}
		return api.Success(api.NewSummaryResponse(*st, summary))
	}

	result, err := h.tideService.GetTide(ctx, loc, date)
	if err != nil {
		return errorResponse(err, loc, date.String())
	}
	return api.Success(api.NewTideResponse(*st, result))
}

func (h *TidesHandler) resolveStation(ctx context.Context, params map[string]string) (*models.Station, events.APIGatewayProxyResponse, bool) {
	if stationID, ok := params["stationId"]; ok {
		st, err := h.stationFinder.FindStation(ctx, stationID)
		if err != nil || st == nil {
			resp, _ := api.Error("Station not found", http.StatusNotFound)
			return nil, resp, false
		}
		return st, events.APIGatewayProxyResponse{}, true
	}

	if !api.HasCoordinates(params) {
		resp, _ := api.Error("stationId or lat and lon are required", http.StatusBadRequest)
		return nil, resp, false
	}

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		resp, _ := api.Error(err.Error(), http.StatusBadRequest)
		return nil, resp, false
	}

	stations, err := h.stationFinder.FindNearestStations(ctx, lat, lon, 1)
	if err != nil {
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Error finding nearest station")
		resp, _ := api.Error("Error finding stations", http.StatusInternalServerError)
		return nil, resp, false
	}
	if len(stations) == 0 {
		resp, _ := api.Error("No station found", http.StatusNotFound)
		return nil, resp, false
	}
	return &stations[0], events.APIGatewayProxyResponse{}, true
}

// errorResponse maps pipeline failures onto HTTP statuses
func errorResponse(err error, loc models.Location, date string) (events.APIGatewayProxyResponse, error) {
	var validationErr *models.ValidationError
	var unknownStation *harmonic.UnknownStationError

	switch {
	case errors.As(err, &unknownStation), errors.Is(err, harmonic.ErrModelNotFound):
		log.Warn().Err(err).Str("location_id", loc.ID).Str("date", date).Msg("No model for station")
		return api.Error("No tide model for station", http.StatusNotFound)
	case errors.Is(err, tide.ErrInsufficientData), errors.Is(err, tide.ErrNoExtrema):
		log.Warn().Err(err).Str("location_id", loc.ID).Str("date", date).Msg("Unusable tide data")
		return api.Error(err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &validationErr):
		log.Error().Err(err).Str("location_id", loc.ID).Str("date", date).Msg("Invalid tide data")
		return api.Error(validationErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return api.Error("Request cancelled", http.StatusGatewayTimeout)
	default:
		log.Error().Err(err).Str("location_id", loc.ID).Str("date", date).Msg("Error computing tide")
		return api.Error("Error computing tide", http.StatusInternalServerError)
	}
}

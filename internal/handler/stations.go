package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/tidecal/internal/api"
	"github.com/bbernstein/tidecal/internal/models"
	"github.com/bbernstein/tidecal/internal/station"
	"github.com/rs/zerolog/log"
)

const defaultStationLimit = 5

type StationsHandler struct {
	stationFinder station.StationFinder
}

func NewStationsHandler(finder station.StationFinder) *StationsHandler {
	return &StationsHandler{
		stationFinder: finder,
	}
}

func (h *StationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	// Check if we're looking up by station ID or coordinates
	if stationID, ok := params["stationId"]; ok {
		stationLocal, err := h.stationFinder.FindStation(ctx, stationID)
		if errors.Is(err, station.ErrStationNotFound) || (err == nil && stationLocal == nil) {
			return api.Error("Station not found", http.StatusNotFound)
		}
		if err != nil {
			log.Error().Err(err).Str("station_id", stationID).Msg("Error finding station")
			return api.Error("Error finding station", http.StatusInternalServerError)
		}
		return api.Success(api.NewStationsResponse([]models.Station{*stationLocal}))
	}

	if !api.HasCoordinates(params) {
		return api.Error("stationId or lat and lon are required", http.StatusBadRequest)
	}

	lat, lon, err := api.ParseCoordinates(params)
	if err != nil {
		var invalidCoordErr api.InvalidCoordinatesError
		if errors.As(err, &invalidCoordErr) {
			return api.Error(err.Error(), http.StatusBadRequest)
		}
		return api.Error("Invalid parameters", http.StatusBadRequest)
	}

	limit := defaultStationLimit
	if limitStr, ok := params["limit"]; ok {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
		}
	}

	stations, err := h.stationFinder.FindNearestStations(ctx, lat, lon, limit)
	if err != nil {
		log.Error().Err(err).Float64("lat", lat).Float64("lon", lon).Msg("Error finding stations")
		return api.Error("Error finding stations", http.StatusInternalServerError)
	}

	return api.Success(api.NewStationsResponse(stations))
}

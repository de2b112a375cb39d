package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/tidecal/internal/cache"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/bbernstein/tidecal/internal/handler"
	"github.com/bbernstein/tidecal/internal/station"
	"github.com/bbernstein/tidecal/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart     = lambda.Start // Allow mocking of lambda.Start in tests
	stationsHandler *handler.StationsHandler
	setupOnce       sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		stationsHandler = handler.NewStationsHandler(newStationFinder(context.Background(), cfg, config.GetCacheConfig()))
	})
}

// newStationFinder reads the published list when a bucket is configured and
// falls back to the built-in catalog otherwise
func newStationFinder(ctx context.Context, cfg *config.Config, cacheConfig *config.CacheConfig) *station.Finder {
	if cfg.StationsBucket == "" {
		return station.NewFinder(nil, nil)
	}
	s3Client, err := store.NewS3Client(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Error creating S3 client, using built-in station list")
		return station.NewFinder(nil, nil)
	}
	source := cache.NewS3StationCache(s3Client, cfg.StationsBucket, cacheConfig.GetStationListTTL())
	return station.NewFinder(source, nil)
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return stationsHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}

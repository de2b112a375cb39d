package main

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/tidecal/internal/api"
	"github.com/bbernstein/tidecal/internal/cache"
	"github.com/bbernstein/tidecal/internal/config"
	"github.com/bbernstein/tidecal/internal/handler"
	"github.com/bbernstein/tidecal/internal/harmonic"
	"github.com/bbernstein/tidecal/internal/station"
	"github.com/bbernstein/tidecal/internal/store"
	"github.com/bbernstein/tidecal/internal/tide"
	"github.com/bbernstein/tidecal/pkg/harmonics"
	"github.com/bbernstein/tidecal/pkg/http/client"
	"github.com/rs/zerolog/log"
)

var (
	lambdaStart  = lambda.Start // Allow mocking of lambda.Start in tests
	tidesHandler *handler.TidesHandler
	setupErr     error
	setupOnce    sync.Once
)

func setup() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		tidesHandler, setupErr = newTidesHandler(context.Background(), cfg, config.GetCacheConfig())
		if setupErr != nil {
			log.Error().Err(setupErr).Msg("Failed to initialize tides handler")
		}
	})
}

func newTidesHandler(ctx context.Context, cfg *config.Config, cacheConfig *config.CacheConfig) (*handler.TidesHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	modelStore, err := newModelStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	finder, err := newStationFinder(ctx, cfg, cacheConfig)
	if err != nil {
		return nil, err
	}

	gateway := harmonic.NewGateway(
		finder,
		harmonic.NewModelCache(modelStore),
		harmonics.NewConstituentReconstructor(),
		harmonic.WithInterval(cfg.PredictionInterval),
	)

	opts := []tide.Option{tide.WithPeriodWindowDays(cfg.PeriodWindowDays)}
	if cacheConfig.EnableLRUCache || cacheConfig.EnableDynamoCache {
		cacheService, err := cache.NewCacheService(ctx, cacheConfig)
		if err != nil {
			return nil, fmt.Errorf("creating cache service: %w", err)
		}
		opts = append(opts, tide.WithCache(cacheService))
	}

	return handler.NewTidesHandler(finder, tide.NewService(gateway, opts...)), nil
}

func newModelStore(ctx context.Context, cfg *config.Config) (harmonic.ModelStore, error) {
	switch cfg.HarmonicsSource {
	case config.SourceFile:
		return store.NewFileStore(cfg.HarmonicsDir)
	case config.SourceHTTP:
		return store.NewHTTPStore(client.New(client.Options{
			BaseURL:    cfg.HarmonicsBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})), nil
	case config.SourceS3:
		s3Client, err := store.NewS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		return store.NewS3Store(s3Client, cfg.HarmonicsBucket, cfg.HarmonicsPrefix)
	}
	return nil, fmt.Errorf("unknown harmonics source %q", cfg.HarmonicsSource)
}

func newStationFinder(ctx context.Context, cfg *config.Config, cacheConfig *config.CacheConfig) (*station.Finder, error) {
	if cfg.StationsBucket == "" {
		return station.NewFinder(nil, nil), nil
	}
	s3Client, err := store.NewS3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating S3 client: %w", err)
	}
	source := cache.NewS3StationCache(s3Client, cfg.StationsBucket, cacheConfig.GetStationListTTL())
	return station.NewFinder(source, nil), nil
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	setup()
	if setupErr != nil {
		return api.Error("Service not configured", http.StatusInternalServerError)
	}
	return tidesHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}

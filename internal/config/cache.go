package config

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// LRU Cache settings
	TideLRUSize       int
	TideLRUTTLMinutes int

	// DynamoDB Cache settings
	TideTableName      string
	TideDynamoTTLDays  int
	StationListTTLDays int

	// Batch processing settings
	BatchSize       int
	MaxBatchRetries int

	// General settings
	EnableLRUCache    bool
	EnableDynamoCache bool
}

const (
	// Default values
	defaultTideLRUSize        = 1000
	defaultTideLRUTTLMinutes  = 60
	defaultTideTableName      = "tide-aggregates-cache"
	defaultDynamoTTLDays      = 30
	defaultStationListTTLDays = 7
	defaultBatchSize          = 25
	defaultMaxBatchRetries    = 3
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		TideLRUSize:        getEnvInt("CACHE_TIDE_LRU_SIZE", defaultTideLRUSize),
		TideLRUTTLMinutes:  getEnvInt("CACHE_TIDE_LRU_TTL_MINUTES", defaultTideLRUTTLMinutes),
		TideTableName:      getEnvOrDefault("CACHE_DYNAMO_TABLE", defaultTideTableName),
		TideDynamoTTLDays:  getEnvInt("CACHE_DYNAMO_TTL_DAYS", defaultDynamoTTLDays),
		StationListTTLDays: getEnvInt("CACHE_STATION_LIST_TTL_DAYS", defaultStationListTTLDays),
		BatchSize:          getEnvInt("CACHE_BATCH_SIZE", defaultBatchSize),
		MaxBatchRetries:    getEnvInt("CACHE_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
		EnableLRUCache:     getEnvBool("CACHE_ENABLE_LRU", true),
		EnableDynamoCache:  getEnvBool("CACHE_ENABLE_DYNAMO", os.Getenv("DYNAMODB_ENDPOINT") != "" || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""),
	}

	log.Debug().
		Int("TideLRUSize", config.TideLRUSize).
		Int("TideLRUTTLMinutes", config.TideLRUTTLMinutes).
		Str("TideTableName", config.TideTableName).
		Int("TideDynamoTTLDays", config.TideDynamoTTLDays).
		Int("StationListTTLDays", config.StationListTTLDays).
		Int("BatchSize", config.BatchSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Bool("EnableLRUCache", config.EnableLRUCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

// Helper methods for the CacheConfig struct
func (c *CacheConfig) GetTideLRUTTL() time.Duration {
	return time.Duration(c.TideLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetDynamoTTL() time.Duration {
	return time.Duration(c.TideDynamoTTLDays) * 24 * time.Hour
}

func (c *CacheConfig) GetStationListTTL() time.Duration {
	return time.Duration(c.StationListTTLDays) * 24 * time.Hour
}

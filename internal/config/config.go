package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Harmonic model sources
const (
	SourceFile = "file"
	SourceHTTP = "http"
	SourceS3   = "s3"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration
	MaxRetries  int

	HarmonicsSource  string
	HarmonicsDir     string
	HarmonicsBaseURL string
	HarmonicsBucket  string
	HarmonicsPrefix  string

	// Bucket holding the published station list; empty uses the built-in catalog only
	StationsBucket string

	PredictionInterval time.Duration
	PeriodWindowDays   int
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithHarmonicsSource selects where harmonic models are read from
func WithHarmonicsSource(source string) Option {
	return func(c *Config) {
		c.HarmonicsSource = source
	}
}

func WithHarmonicsDir(dir string) Option {
	return func(c *Config) {
		c.HarmonicsDir = dir
	}
}

func WithHarmonicsBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.HarmonicsBaseURL = baseURL
	}
}

func WithHarmonicsBucket(bucket, prefix string) Option {
	return func(c *Config) {
		c.HarmonicsBucket = bucket
		c.HarmonicsPrefix = prefix
	}
}

func WithStationsBucket(bucket string) Option {
	return func(c *Config) {
		c.StationsBucket = bucket
	}
}

// WithPredictionInterval sets the spacing of predicted samples
func WithPredictionInterval(interval time.Duration) Option {
	return func(c *Config) {
		if interval > 0 {
			c.PredictionInterval = interval
		}
	}
}

// WithPeriodWindowDays sets how many days around a target date feed period analysis
func WithPeriodWindowDays(days int) Option {
	return func(c *Config) {
		if days >= 0 {
			c.PeriodWindowDays = days
		}
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:        "production",
		LogLevel:           zerolog.InfoLevel,
		HTTPTimeout:        10 * time.Second,
		MaxRetries:         3,
		HarmonicsSource:    SourceFile,
		HarmonicsDir:       "harmonics",
		PredictionInterval: 60 * time.Minute,
		PeriodWindowDays:   3,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate checks that the selected harmonics source is fully configured
func (c *Config) Validate() error {
	switch c.HarmonicsSource {
	case SourceFile:
		if c.HarmonicsDir == "" {
			return fmt.Errorf("HARMONICS_DIR is required for source %q", c.HarmonicsSource)
		}
	case SourceHTTP:
		if c.HarmonicsBaseURL == "" {
			return fmt.Errorf("HARMONICS_BASE_URL is required for source %q", c.HarmonicsSource)
		}
	case SourceS3:
		if c.HarmonicsBucket == "" {
			return fmt.Errorf("HARMONICS_BUCKET is required for source %q", c.HarmonicsSource)
		}
	default:
		return fmt.Errorf("unknown harmonics source %q", c.HarmonicsSource)
	}
	return nil
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithHarmonicsSource(getEnvOrDefault("HARMONICS_SOURCE", SourceFile)),
		WithHarmonicsDir(getEnvOrDefault("HARMONICS_DIR", "harmonics")),
		WithHarmonicsBaseURL(os.Getenv("HARMONICS_BASE_URL")),
		WithHarmonicsBucket(os.Getenv("HARMONICS_BUCKET"), os.Getenv("HARMONICS_PREFIX")),
		WithStationsBucket(os.Getenv("STATIONS_BUCKET")),
		WithPredictionInterval(getDurationEnvOrDefault("PREDICTION_INTERVAL", 60*time.Minute)),
		WithPeriodWindowDays(getEnvInt("PERIOD_WINDOW_DAYS", 3)),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

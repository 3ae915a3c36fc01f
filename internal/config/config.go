package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Beach timezone used to derive the local evaluation hour for UV rules.
	Timezone *time.Location

	// OpenWeatherMap client configuration.
	WeatherAPIKey   string
	WeatherBaseURL  string
	WeatherTimeout  time.Duration
	WeatherRetryMax int

	// Observation cache configuration.
	CacheTTL  time.Duration
	CacheSize int
	RedisAddr string // non-empty switches the cache store to Redis

	// Kafka report publishing (enabled when brokers are set).
	KafkaBrokers      []string
	KafkaReportsTopic string
}

// PublishEnabled reports whether Kafka report publishing is configured.
func (c *Config) PublishEnabled() bool { return len(c.KafkaBrokers) > 0 }

// RedisEnabled reports whether the Redis cache backend is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("OWM_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parseDuration("CACHE_TTL", "5m")
	if err != nil {
		return nil, err
	}

	retryMax, err := parsePositiveInt("OWM_RETRY_MAX", 3)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parsePositiveInt("CACHE_SIZE", 32)
	if err != nil {
		return nil, err
	}

	tzName := envOrDefault("BEACH_TIMEZONE", "America/New_York")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid BEACH_TIMEZONE %q: %w", tzName, err)
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Timezone:        tz,

		WeatherAPIKey:   os.Getenv("OWM_API_KEY"),
		WeatherBaseURL:  envOrDefault("OWM_BASE_URL", defaultWeatherBaseURL),
		WeatherTimeout:  weatherTimeout,
		WeatherRetryMax: retryMax,

		CacheTTL:  cacheTTL,
		CacheSize: cacheSize,
		RedisAddr: os.Getenv("REDIS_ADDR"),

		KafkaBrokers:      parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaReportsTopic: envOrDefault("KAFKA_REPORTS_TOPIC", "beach-safety-reports"),
	}

	if cfg.WeatherAPIKey == "" {
		return nil, errors.New("OWM_API_KEY is required")
	}
	if cfg.PublishEnabled() && cfg.KafkaReportsTopic == "" {
		return nil, errors.New("KAFKA_REPORTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

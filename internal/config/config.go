package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Fetch modes for the Record Source.
const (
	FetchModeSingle = "single"
	FetchModeAll    = "all"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Record Source settings.
	BreweryAPIBaseURL string
	FetchMode         string
	PerPage           int
	MaxPages          int
	FetchRetries      int
	FetchTimeout      time.Duration
	RateLimitRPS      float64
	CacheSize         int
	RefreshInterval   time.Duration

	CORSAllowedOrigins []string

	// Snapshot publishing (optional).
	KafkaBrokers       []string
	KafkaSnapshotTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s", false)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "0s", true)
	if err != nil {
		return nil, err
	}

	perPage, err := parseInt("PER_PAGE", 50, 1, 200)
	if err != nil {
		return nil, err
	}
	maxPages, err := parseInt("MAX_PAGES", 1000, 1, 1_000_000)
	if err != nil {
		return nil, err
	}
	retries, err := parseInt("FETCH_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}
	cacheSize, err := parseInt("CACHE_SIZE", 1000, 1, 1_000_000)
	if err != nil {
		return nil, err
	}

	rps, err := parseRate()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		BreweryAPIBaseURL: strings.TrimRight(sharedcfg.EnvOrDefault("BREWERY_API_BASE_URL", "https://api.openbrewerydb.org/v1"), "/"),
		FetchMode:         sharedcfg.EnvOrDefault("FETCH_MODE", FetchModeAll),
		PerPage:           perPage,
		MaxPages:          maxPages,
		FetchRetries:      retries,
		FetchTimeout:      fetchTimeout,
		RateLimitRPS:      rps,
		CacheSize:         cacheSize,
		RefreshInterval:   refreshInterval,

		CORSAllowedOrigins: parseList(sharedcfg.EnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		KafkaBrokers:       brokers,
		KafkaSnapshotTopic: sharedcfg.EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "brewery-snapshots"),
		KafkaEnabled:       kafkaEnabled,
	}

	if cfg.BreweryAPIBaseURL == "" {
		return nil, errors.New("BREWERY_API_BASE_URL is required")
	}
	if cfg.FetchMode != FetchModeSingle && cfg.FetchMode != FetchModeAll {
		return nil, fmt.Errorf("invalid FETCH_MODE %q: want %q or %q", cfg.FetchMode, FetchModeSingle, FetchModeAll)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required")
	}

	return cfg, nil
}

func parseDuration(key, def string, allowZero bool) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer between %d and %d", key, lo, hi)
	}
	return n, nil
}

func parseRate() (float64, error) {
	s := os.Getenv("RATE_LIMIT_RPS")
	if s == "" {
		return 5, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, errors.New("invalid RATE_LIMIT_RPS")
	}
	return v, nil
}

func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/city-forecast/internal/common"
)

// Data source modes.
const (
	SourceAPI       = "api"
	SourceMock      = "mock"
	SourceMockError = "mock-error"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// DataSource selects the weather data source: api, mock or mock-error.
	DataSource string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// SearchLimit caps the number of cities returned by a search.
	SearchLimit int

	// Outbound rate limiting; RateLimitRPS <= 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// RefreshInterval controls how often tracked city forecasts are refreshed.
	RefreshInterval time.Duration

	// Cities whose daily forecast is refreshed in the background.
	TrackedCities []string

	// StoreMaxAge is how long a stored forecast stays fresh (0 = forever).
	StoreMaxAge time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")

	cfg.DataSource = getenvDefault("DATA_SOURCE", SourceAPI)
	switch cfg.DataSource {
	case SourceAPI, SourceMock, SourceMockError:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q: want %s, %s or %s", cfg.DataSource, SourceAPI, SourceMock, SourceMockError)
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = getenvInt("SEARCH_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getenvFloat("RATE_LIMIT_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getenvInt("RATE_LIMIT_BURST", 1); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "6h"); err != nil {
		return nil, err
	}

	cfg.TrackedCities = common.SplitList(os.Getenv("TRACKED_CITIES"))
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

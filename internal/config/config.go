package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey string

	Port string

	// MeteoAPIURL is where the dashboard and the form send their queries.
	MeteoAPIURL string

	// HTTPTimeout bounds each outbound OpenWeatherMap call.
	HTTPTimeout time.Duration

	// DashboardTimeout bounds one dashboard render; slower rows stay loading.
	DashboardTimeout time.Duration

	// Analysis cache retention.
	CacheTTL        time.Duration
	CacheMaxHistory int

	// RefreshInterval controls how often the cache is warmed for the schedule.
	RefreshInterval time.Duration

	// ScheduleFile optionally replaces the built-in schedule (YAML).
	ScheduleFile string

	// DBPath is the SQLite history file; empty disables history.
	DBPath string

	RateLimitRPS   float64
	RateLimitBurst int

	// ForecastProvider selects the forecast source: "openweather" or "openmeteo".
	// Geocoding always goes through OpenWeatherMap.
	ForecastProvider string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is not set")
	}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.MeteoAPIURL = getenvDefault("METEO_API_URL", "http://127.0.0.1:"+cfg.Port)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.DashboardTimeout, err = getenvDuration("DASHBOARD_TIMEOUT", "20s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "30m"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	cfg.CacheMaxHistory = getenvInt("CACHE_MAX_HISTORY", 4)

	cfg.ScheduleFile = os.Getenv("SCHEDULE_FILE")
	cfg.DBPath = getenvDefault("DB_PATH", "meteo.db")
	if v, ok := os.LookupEnv("DB_PATH"); ok && v == "" {
		cfg.DBPath = ""
	}

	// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second.
	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", 1)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 5)

	cfg.ForecastProvider = getenvDefault("FORECAST_PROVIDER", "openweather")
	switch cfg.ForecastProvider {
	case "openweather", "openmeteo":
	default:
		return nil, fmt.Errorf("invalid FORECAST_PROVIDER %q", cfg.ForecastProvider)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
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

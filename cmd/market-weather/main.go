package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/meteosandra/market-weather/internal/api/http"
	"github.com/meteosandra/market-weather/internal/config"
	"github.com/meteosandra/market-weather/internal/dashboard"
	"github.com/meteosandra/market-weather/internal/meteo"
	"github.com/meteosandra/market-weather/internal/meteo/providers"
	"github.com/meteosandra/market-weather/internal/schedule"
	"github.com/meteosandra/market-weather/internal/scheduler"
	"github.com/meteosandra/market-weather/internal/storage"
	"github.com/meteosandra/market-weather/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	entries, err := schedule.Load(cfg.ScheduleFile)
	if err != nil {
		log.Fatalf("failed to load schedule: %v", err)
	}
	log.Printf("INFO: %d schedule entries loaded", len(entries))

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// OpenWeatherMap with resilience (backoff + circuit breaker) behind a rate limiter.
	owm := providers.NewOpenWeather(httpClient, cfg.OpenWeatherAPIKey)
	var source providers.Upstream = owm
	if cfg.ForecastProvider == "openmeteo" {
		source = providers.Split{Geocoder: owm, ForecastSource: providers.NewOpenMeteo(httpClient)}
	}
	log.Printf("INFO: forecast provider: %s", cfg.ForecastProvider)
	upstream := providers.NewRateLimited(source, cfg.RateLimitRPS, cfg.RateLimitBurst)

	cache := store.NewMemoryStore(cfg.CacheMaxHistory, cfg.CacheTTL)

	var history meteo.History
	if cfg.DBPath != "" {
		db, err := storage.NewSQLite(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open history database: %v", err)
		}
		defer db.Close()
		history = db
	} else {
		log.Println("INFO: DB_PATH empty; analysis history disabled")
	}

	service := meteo.NewService(upstream, upstream, cache, history)

	// Scheduler that keeps the cache warm for the schedule.
	sched := scheduler.New(entries, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// The dashboard and the form reach the weather API over HTTP, like any other client.
	apiClient := dashboard.NewHTTPClient(cfg.MeteoAPIURL, &http.Client{})
	renderer := dashboard.NewRenderer(apiClient, cfg.DashboardTimeout)
	form := dashboard.NewFormHandler(apiClient)

	app := fiber.New(fiber.Config{
		AppName:               "market-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.DashboardTimeout + 10*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "market-weather",
		})
	})

	httpapi.RegisterRoutes(app, service)
	httpapi.RegisterPages(app, renderer, form, entries)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

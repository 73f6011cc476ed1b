package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/city-forecast/internal/api/http"
	"github.com/i474232898/city-forecast/internal/config"
	"github.com/i474232898/city-forecast/internal/scheduler"
	"github.com/i474232898/city-forecast/internal/store"
	"github.com/i474232898/city-forecast/internal/weather"
	"github.com/i474232898/city-forecast/internal/weather/mock"
	"github.com/i474232898/city-forecast/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	source := newDataSource(cfg)

	// In-memory store of the latest daily forecast per tracked city.
	memStore := store.NewMemoryStore(cfg.StoreMaxAge)

	service := weather.NewService(source, memStore)

	// Scheduler that periodically refreshes tracked city forecasts.
	sched := scheduler.New(cfg.TrackedCities, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "city-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    "city-forecast",
			"dataSource": cfg.DataSource,
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s (data source %s)", cfg.Port, cfg.DataSource)
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

func newDataSource(cfg *config.AppConfig) weather.DataSource {
	switch cfg.DataSource {
	case config.SourceMock:
		return mock.Source{}
	case config.SourceMockError:
		return mock.Failing{}
	}

	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("ERROR: OPENWEATHER_API_KEY is not set; provider calls will fail")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	return providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.OpenWeatherBaseURL),
		providers.WithSearchLimit(cfg.SearchLimit),
		providers.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
}

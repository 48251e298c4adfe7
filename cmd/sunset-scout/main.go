package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/sunset-scout/internal/api/http"
	"github.com/i474232898/sunset-scout/internal/config"
	"github.com/i474232898/sunset-scout/internal/metrics"
	"github.com/i474232898/sunset-scout/internal/notify"
	"github.com/i474232898/sunset-scout/internal/runner"
	"github.com/i474232898/sunset-scout/internal/scheduler"
	"github.com/i474232898/sunset-scout/internal/scout"
	"github.com/i474232898/sunset-scout/internal/store"
	"github.com/i474232898/sunset-scout/internal/weather"
	"github.com/i474232898/sunset-scout/internal/weather/providers"
)

func main() {
	serve := flag.Bool("serve", false, "Run the daily scheduler and HTTP API instead of a single run")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sunset-scout [-serve]\n\n")
		fmt.Fprintf(os.Stderr, "Scores tonight's sunset and plans the trip to the best viewing spot.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(log)

	loc, err := cfg.TimeLocation()
	if err != nil {
		log.Error("invalid time zone", "error", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector("sunset_scout")

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	hour, minute := cfg.FallbackClock()
	service := weather.NewService(weather.ServiceConfig{
		Point:                cfg.Point(),
		Location:             loc,
		FallbackSunsetHour:   hour,
		FallbackSunsetMinute: minute,
	}, buildProviders(cfg, httpClient), providers.NewSunriseSunsetProvider(httpClient), collector, log)

	scorer, err := scout.NewScorer(scout.Config{Locations: cfg.Locations})
	if err != nil {
		log.Error("invalid scorer configuration", "error", err)
		os.Exit(1)
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	run := runner.New(runner.Config{
		Region:      cfg.Region,
		HomeStation: cfg.HomeStation,
		Location:    loc,
	}, service, scorer, memStore, buildSinks(cfg), collector, log)

	if !*serve {
		if _, err := run.Run(context.Background()); err != nil {
			log.Error("sunset scout failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Scheduler that runs the scout once a day.
	sched := scheduler.New(run, cfg.RunAt, loc, 2*time.Minute, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "sunset-scout",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * time.Minute,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Runner:   run,
		Reports:  memStore,
		Scorer:   scorer,
		Location: loc,
		Registry: collector.Registry,
	})

	go func() {
		log.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// buildProviders returns the configured current-conditions providers in order.
func buildProviders(cfg *config.AppConfig, client *http.Client) []weather.Provider {
	var provs []weather.Provider
	for _, name := range cfg.Providers {
		switch name {
		case "openweather":
			provs = append(provs, providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey))
		case "openmeteo":
			provs = append(provs, providers.NewOpenMeteoProvider(client))
		case "weatherapi":
			provs = append(provs, providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey))
		}
	}
	return provs
}

func buildSinks(cfg *config.AppConfig) []notify.Sink {
	sinks := []notify.Sink{
		notify.NewLogSink(os.Stdout),
		notify.NewFileSink(cfg.OutputDir),
		notify.NewAlertSink(cfg.AlertFile, cfg.AlertThreshold),
	}

	switch cfg.Email.Provider {
	case "smtp":
		sinks = append(sinks, notify.NewSMTPSink(notify.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
			From:     cfg.Email.From,
			To:       cfg.Email.To,
		}))
	case "sendgrid":
		sinks = append(sinks, notify.NewSendGridSink(notify.SendGridConfig{
			APIKey: cfg.Email.SendGridAPIKey,
			From:   cfg.Email.From,
			To:     cfg.Email.To,
		}))
	}
	return sinks
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"weather-dashboard/config"
	_ "weather-dashboard/docs"
	"weather-dashboard/internal/catalog"
	v1 "weather-dashboard/internal/controllers/http/v1"
	"weather-dashboard/internal/ratelimit"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/internal/services/people"
	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/database"
	"weather-dashboard/pkg/httpserver"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
	"weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description Tracks people at saved locations and shows the current hour and a three day forecast for each.
// @description Forecasts come from Tomorrow.io and are cached for a configurable time.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Weather
// @tag.description Forecast lookups
// @tag.name Dashboard
// @tag.description Per user weather overview
// @tag.name People
// @tag.description People a user tracks
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}

	writers := []io.Writer{os.Stdout}
	var sentryHook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		sentryHook, err = observe.NewSentryHook(observe.SentryOptions{
			AppEnv:  cnf.App.Env,
			AppName: cnf.App.Name,
			DSN:     cnf.Sentry.DSN,
			Debug:   cnf.Sentry.Debug,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentry disabled: %v\n", err)
		} else {
			writers = append(writers, sentryHook)
		}
	}

	l := logger.NewZapLogger(logger.Options{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, writers...)

	db, err := database.Open(cnf.Database, l)
	if err != nil {
		l.Fatal("cannot open database", map[string]any{"err": err.Error()})
	}

	limiter, closeLimiter, err := ratelimit.FromConfig(cnf.RateLimit, l)
	if err != nil {
		l.Fatal("cannot build rate limiter", map[string]any{"err": err.Error()})
	}

	codes, err := catalog.Load()
	if err != nil {
		l.Fatal("cannot load weather code catalog", map[string]any{"err": err.Error()})
	}
	icons := catalog.NewIconResolver(os.DirFS(cnf.Weather.IconsDir), cnf.Weather.IconsURL)

	var m *metrics.WeatherMetrics
	if cnf.Metrics.Enabled {
		m, err = metrics.New()
		if err != nil {
			l.Fatal("cannot register metrics", map[string]any{"err": err.Error()})
		}
	}

	repos := repositories.InitRepositories(cnf, db, limiter, m, l)

	policy := weather.NewCachePolicy(repos.Forecasts, repos.Fetcher, codes, icons, weather.Options{
		StaleAfter:   cnf.Weather.StaleAfter,
		ForecastDays: cnf.Weather.ForecastDays,
		Metrics:      m,
	}, l)
	weatherService := weather.NewWeatherService(repos.People, policy, l)
	peopleService := people.NewService(repos.People, repos.Timezones, codes, l)

	app := httpserver.InitFiberServer(cnf.App.Name, cnf.Server)
	app.Static("/"+cnf.Weather.IconsURL, cnf.Weather.IconsDir)
	if m != nil {
		app.Get(cnf.Metrics.Path, adaptor.HTTPHandler(m.Handler()))
	}

	v1.NewRouter(
		app,
		weatherService,
		peopleService,
		codes,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":       cnf.Server.Port,
		"env":        cnf.App.Env,
		"database":   cnf.Database.Driver,
		"rate_limit": cnf.RateLimit.Backend,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		_ = closeLimiter()
		_ = database.Close(db)
		if sentryHook != nil {
			sentryHook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}

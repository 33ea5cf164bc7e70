package repositories

import (
	"net/http"

	"gorm.io/gorm"

	"weather-dashboard/config"
	"weather-dashboard/internal/ratelimit"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

// Repositories bundles the storage and upstream clients the services need.
type Repositories struct {
	Forecasts *GormForecastStore
	People    *PeopleRepository
	Fetcher   *TomorrowIORepository
	Timezones *TimezoneRepository
}

func InitRepositories(
	cfg *config.Config,
	db *gorm.DB,
	limiter ratelimit.Limiter,
	m *metrics.WeatherMetrics,
	l *logger.Logger,
) *Repositories {
	httpClient := &http.Client{}

	forecasts := NewGormForecastStore(db)

	fetcher := NewTomorrowIORepository(
		TomorrowIOOptions{
			BaseURL:      cfg.Weather.BaseURL,
			APIKey:       cfg.Weather.APIKey,
			Timeout:      cfg.Weather.Timeout,
			ForecastDays: cfg.Weather.ForecastDays,
			Metrics:      m,
		},
		httpClient,
		limiter,
		forecasts,
		NewAuditLog(cfg.Weather.AuditDir, l),
		l,
	)

	timezones := NewTimezoneRepository(
		TimezoneOptions{
			BaseURL:  cfg.Timezone.BaseURL,
			APIKey:   cfg.Timezone.APIKey,
			Default:  cfg.Timezone.Default,
			Timeout:  cfg.Timezone.Timeout,
			CacheTTL: cfg.Timezone.CacheTTL,
			Metrics:  m,
		},
		httpClient,
		l,
	)

	return &Repositories{
		Forecasts: forecasts,
		People:    NewPeopleRepository(db),
		Fetcher:   fetcher,
		Timezones: timezones,
	}
}

package weather

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"weather-dashboard/internal/catalog"
	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repositories"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	defaultStaleAfter   = 6 * time.Hour
	defaultForecastDays = 3
)

// PeopleLister is the part of the people repository the dashboard reads.
type PeopleLister interface {
	ListPeople(ctx context.Context, username string) ([]models.Person, error)
}

type Options struct {
	// StaleAfter is how long an observation stays valid after download.
	StaleAfter   time.Duration
	ForecastDays int
	// Now defaults to time.Now.
	Now     func() time.Time
	Metrics *metrics.WeatherMetrics
}

// CachePolicy decides whether a stored observation can be shown or a fresh
// one has to be fetched, and formats the result for display.
type CachePolicy struct {
	store        repositories.ForecastStore
	fetcher      repositories.Fetcher
	catalog      *catalog.Catalog
	icons        *catalog.IconResolver
	staleAfter   time.Duration
	forecastDays int
	metrics      *metrics.WeatherMetrics
	now          func() time.Time
	l            *logger.Logger
}

func NewCachePolicy(
	store repositories.ForecastStore,
	fetcher repositories.Fetcher,
	cat *catalog.Catalog,
	icons *catalog.IconResolver,
	opts Options,
	l *logger.Logger,
) *CachePolicy {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = defaultStaleAfter
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = defaultForecastDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &CachePolicy{
		store:        store,
		fetcher:      fetcher,
		catalog:      cat,
		icons:        icons,
		staleAfter:   opts.StaleAfter,
		forecastDays: opts.ForecastDays,
		metrics:      opts.Metrics,
		now:          opts.Now,
		l:            l,
	}
}

// GetWeather resolves the display record for loc at localTime. It never
// fails; anything it cannot resolve is reported as n/a.
func (p *CachePolicy) GetWeather(ctx context.Context, loc models.Location, localTime time.Time, period models.Period) models.WeatherDisplay {
	date := localTime.Format(models.DateLayout)
	hour := 0
	if period == models.PeriodHour {
		hour = localTime.Hour()
	}
	if !period.Valid() {
		return models.Unavailable(period, date, hour)
	}
	step := period.Step()

	obs, err := p.store.FindLatest(ctx, loc.ID, date, hour, step)
	if err != nil && !errors.Is(err, repositories.ErrObservationNotFound) {
		p.l.Error(err, map[string]any{"location": loc.ID, "date": date, "hour": hour, "step": step})
		obs = nil
	}

	source := models.SourceCache
	if obs == nil || p.isStale(obs) {
		p.l.Debug("observation missing or stale, refreshing", map[string]any{
			"location": loc.ID,
			"date":     date,
			"hour":     hour,
			"step":     step,
			"cached":   obs != nil,
		})
		fetched := p.fetcher.Fetch(ctx, loc, localTime, period, obs)
		obs = p.reload(ctx, loc.ID, date, hour, step, fetched)
		source = models.SourceFetched
	}

	if obs == nil || p.isStale(obs) {
		p.l.Info("weather not available", map[string]any{
			"location": loc.ID,
			"date":     date,
			"hour":     hour,
			"step":     step,
		})
		p.metrics.ObserveDisplay(period.String(), string(models.SourceUnavailable))
		return models.Unavailable(period, date, hour)
	}

	p.metrics.ObserveDisplay(period.String(), string(source))
	return p.display(obs, period, date, hour, source)
}

// reload reads the key again after a fetch, since the fetcher returns only
// the first interval it stored.
func (p *CachePolicy) reload(ctx context.Context, locationID uint, date string, hour int, step models.Step, fetched *models.Weather) *models.Weather {
	obs, err := p.store.FindLatest(ctx, locationID, date, hour, step)
	if err == nil {
		return obs
	}
	if !errors.Is(err, repositories.ErrObservationNotFound) {
		p.l.Error(err, map[string]any{"location": locationID, "date": date, "hour": hour, "step": step})
	}

	if fetched != nil && fetched.LocationID == locationID && fetched.Date == date &&
		fetched.Hour == hour && fetched.Step == step {
		return fetched
	}
	return nil
}

// isStale holds once staleAfter has fully elapsed since download.
func (p *CachePolicy) isStale(obs *models.Weather) bool {
	return !p.now().Before(obs.Timestamp.Add(p.staleAfter))
}

func (p *CachePolicy) display(obs *models.Weather, period models.Period, date string, hour int, source models.Source) models.WeatherDisplay {
	d := models.WeatherDisplay{
		Period:      period.String(),
		Date:        date,
		Hour:        hour,
		Temp:        strconv.Itoa(obs.Temp),
		Description: models.NotAvailable,
		Source:      source,
	}

	if desc, ok := p.catalog.Describe(obs.WeatherCode, period, hour); ok {
		d.Description = desc
	}
	if icon, ok := p.icons.Resolve(catalog.IconCode(obs.WeatherCode, period, hour)); ok {
		d.IconPath = icon
	} else {
		p.l.Debug("no icon for weather code", map[string]any{"code": obs.WeatherCode, "period": period.String()})
	}
	if period == models.PeriodDay {
		if day, err := time.Parse(models.DateLayout, date); err == nil {
			d.DayName = day.Weekday().String()
		}
	}

	return d
}

// Forecast builds the current hour and the daily forecast for loc in its own
// timezone.
func (p *CachePolicy) Forecast(ctx context.Context, loc models.Location) models.LocationForecast {
	localNow := p.localNow(loc)

	return models.LocationForecast{
		Location: loc,
		Current:  p.GetWeather(ctx, loc, localNow, models.PeriodHour),
		Days:     p.days(ctx, loc, localNow),
	}
}

// Displays resolves a single period: the current hour, or one record per
// forecast day starting today.
func (p *CachePolicy) Displays(ctx context.Context, loc models.Location, period models.Period) []models.WeatherDisplay {
	localNow := p.localNow(loc)

	switch period {
	case models.PeriodHour:
		return []models.WeatherDisplay{p.GetWeather(ctx, loc, localNow, models.PeriodHour)}
	case models.PeriodDay:
		return p.days(ctx, loc, localNow)
	}
	return nil
}

func (p *CachePolicy) days(ctx context.Context, loc models.Location, localNow time.Time) []models.WeatherDisplay {
	out := make([]models.WeatherDisplay, 0, p.forecastDays)
	for i := 0; i < p.forecastDays; i++ {
		out = append(out, p.GetWeather(ctx, loc, localNow.AddDate(0, 0, i), models.PeriodDay))
	}
	return out
}

func (p *CachePolicy) localNow(loc models.Location) time.Time {
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		p.l.Warning("invalid location timezone, using UTC", map[string]any{
			"location": loc.ID,
			"timezone": loc.Timezone,
			"err":      err.Error(),
		})
		tz = time.UTC
	}
	return p.now().In(tz)
}

// WeatherService assembles the per user dashboard.
type WeatherService struct {
	people PeopleLister
	policy *CachePolicy
	l      *logger.Logger
}

func NewWeatherService(people PeopleLister, policy *CachePolicy, l *logger.Logger) *WeatherService {
	return &WeatherService{
		people: people,
		policy: policy,
		l:      l,
	}
}

func (s *WeatherService) Forecast(ctx context.Context, loc models.Location) models.LocationForecast {
	return s.policy.Forecast(ctx, loc)
}

func (s *WeatherService) Displays(ctx context.Context, loc models.Location, period models.Period) []models.WeatherDisplay {
	return s.policy.Displays(ctx, loc, period)
}

// Dashboard returns a view per person tracked by username, in the order the
// people were added. Each distinct location is resolved once, in its own
// goroutine, and shared by everyone living there.
func (s *WeatherService) Dashboard(ctx context.Context, username string) ([]models.PersonView, error) {
	people, err := s.people.ListPeople(ctx, username)
	if err != nil {
		return nil, err
	}

	var locations []models.Location
	seen := make(map[uint]int, len(people))
	for _, person := range people {
		if _, ok := seen[person.LocationID]; !ok {
			seen[person.LocationID] = len(locations)
			locations = append(locations, person.Location)
		}
	}

	s.l.Info("building dashboard", map[string]any{
		"username":  username,
		"people":    len(people),
		"locations": len(locations),
	})

	forecasts := make([]models.LocationForecast, len(locations))
	wg := sync.WaitGroup{}

	for i, loc := range locations {
		wg.Add(1)

		go func(i int, loc models.Location) {
			defer wg.Done()
			forecasts[i] = s.policy.Forecast(ctx, loc)
		}(i, loc)
	}

	wg.Wait()

	views := make([]models.PersonView, len(people))
	for i, person := range people {
		forecast := forecasts[seen[person.LocationID]]
		views[i] = models.PersonView{
			Person:  person,
			Current: forecast.Current,
			Days:    forecast.Days,
		}
	}

	return views, nil
}

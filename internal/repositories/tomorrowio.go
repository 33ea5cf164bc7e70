package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/ratelimit"
	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	TomorrowIOBaseURL = "https://api.tomorrow.io/v4/timelines"

	hourlyCodeField = "weatherCode"
	dailyCodeField  = "weatherCodeDay"

	defaultFetchTimeout = 10 * time.Second
	defaultForecastDays = 3
)

// Fetcher downloads observations for a location and persists them. It never
// fails: on any upstream problem it hands back previous.
type Fetcher interface {
	Fetch(ctx context.Context, loc models.Location, ref time.Time, period models.Period, previous *models.Weather) *models.Weather
}

type TomorrowIOOptions struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	ForecastDays int
	Metrics      *metrics.WeatherMetrics
}

type TomorrowIORepository struct {
	baseURL      string
	apiKey       string
	timeout      time.Duration
	forecastDays int

	httpClient HTTPClient
	limiter    ratelimit.Limiter
	store      ForecastStore
	audit      *AuditLog
	metrics    *metrics.WeatherMetrics
	now        func() time.Time
	l          *logger.Logger
}

func NewTomorrowIORepository(
	opts TomorrowIOOptions,
	httpClient HTTPClient,
	limiter ratelimit.Limiter,
	store ForecastStore,
	audit *AuditLog,
	l *logger.Logger,
) *TomorrowIORepository {
	if opts.BaseURL == "" {
		opts.BaseURL = TomorrowIOBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultFetchTimeout
	}
	if opts.ForecastDays <= 0 {
		opts.ForecastDays = defaultForecastDays
	}

	return &TomorrowIORepository{
		baseURL:      opts.BaseURL,
		apiKey:       opts.APIKey,
		timeout:      opts.Timeout,
		forecastDays: opts.ForecastDays,
		httpClient:   httpClient,
		limiter:      limiter,
		store:        store,
		audit:        audit,
		metrics:      opts.Metrics,
		now:          time.Now,
		l:            l,
	}
}

type timelinesResponse struct {
	Data struct {
		Timelines []struct {
			Timestep  string     `json:"timestep"`
			Intervals []interval `json:"intervals"`
		} `json:"timelines"`
	} `json:"data"`
}

type interval struct {
	StartTime time.Time `json:"startTime"`
	Values    struct {
		Temperature    *float64     `json:"temperature"`
		WeatherCode    *json.Number `json:"weatherCode"`
		WeatherCodeDay *json.Number `json:"weatherCodeDay"`
	} `json:"values"`
}

type upstreamError struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Fetch implements Fetcher.
func (t *TomorrowIORepository) Fetch(
	ctx context.Context,
	loc models.Location,
	ref time.Time,
	period models.Period,
	previous *models.Weather,
) *models.Weather {
	first, err := t.fetch(ctx, loc, ref, period)
	if err != nil {
		t.l.Warning("forecast fetch failed, keeping previous observation", map[string]any{
			"location":     loc.ID,
			"period":       period.String(),
			"err":          err.Error(),
			"upstream":     IsUpstreamFailure(err),
			"has_previous": previous != nil,
		})
		return previous
	}
	return first
}

func (t *TomorrowIORepository) fetch(ctx context.Context, loc models.Location, ref time.Time, period models.Period) (*models.Weather, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %d", period)
	}

	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		return nil, fmt.Errorf("location %d timezone %q: %w", loc.ID, loc.Timezone, err)
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	reqURL := t.requestURL(loc, ref.In(tz), period)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	t.l.Info("making tomorrow.io API request", map[string]any{
		"location": loc.ID,
		"period":   period.String(),
	})

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.metrics.ObserveUpstream(metrics.APITomorrowIO, "error", time.Since(start))
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	t.metrics.ObserveUpstream(metrics.APITomorrowIO, strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.l.Info("received tomorrow.io API response", map[string]any{
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		t.logUpstreamError(resp.StatusCode, body)
		return nil, ErrUpstreamRateLimited
	case http.StatusBadRequest:
		t.logUpstreamError(resp.StatusCode, body)
		return nil, ErrUpstreamBadRequest
	default:
		return nil, fmt.Errorf("%w: %d %s", ErrUpstreamStatus, resp.StatusCode, resp.Status)
	}

	fetchedAt := t.now().UTC()
	observations, err := parseTimeline(body, loc, tz, period, fetchedAt)
	if err != nil {
		return nil, err
	}

	for i := range observations {
		if err := t.store.Persist(ctx, &observations[i]); err != nil {
			return nil, err
		}
	}

	t.metrics.ObserveStored(len(observations))

	first := &observations[0]
	if path, err := t.audit.Write(first, fetchedAt, body); err != nil {
		t.l.Warning("failed to write audit file", map[string]any{"err": err.Error()})
	} else if path != "" {
		t.l.Debug("saved raw forecast response", map[string]any{"path": path})
	}

	t.l.Info("stored forecast observations", map[string]any{
		"location":     loc.ID,
		"period":       period.String(),
		"observations": len(observations),
	})

	return first, nil
}

// requestURL builds the timelines query. Hourly windows start at the top of
// ref's hour and span one hour; daily windows span forecastDays from ref.
func (t *TomorrowIORepository) requestURL(loc models.Location, ref time.Time, period models.Period) string {
	start := ref
	end := ref.Add(time.Duration(t.forecastDays) * 24 * time.Hour)
	codeField := dailyCodeField
	if period == models.PeriodHour {
		start = time.Date(ref.Year(), ref.Month(), ref.Day(), ref.Hour(), 0, 0, 0, ref.Location())
		end = start.Add(time.Hour)
		codeField = hourlyCodeField
	}

	q := url.Values{}
	q.Set("location", loc.Latitude+","+loc.Longitude)
	q.Set("startTime", start.Format(time.RFC3339))
	q.Set("endTime", end.Format(time.RFC3339))
	q.Set("timesteps", string(period.Step()))
	q.Set("fields", "temperature,"+codeField)
	q.Set("units", "imperial")
	q.Set("apikey", t.apiKey)

	return t.baseURL + "?" + q.Encode()
}

func (t *TomorrowIORepository) logUpstreamError(status int, body []byte) {
	var upstream upstreamError
	fields := map[string]any{"status": status}
	if err := json.Unmarshal(body, &upstream); err == nil {
		fields["type"] = upstream.Type
		fields["message"] = upstream.Message
		fields["code"] = upstream.Code
	} else {
		fields["body"] = string(body)
	}
	t.l.Warning("tomorrow.io rejected the request", fields)
}

// parseTimeline turns the first timeline into observations dated in the
// location's local time. Intervals without a temperature or code are skipped.
func parseTimeline(body []byte, loc models.Location, tz *time.Location, period models.Period, fetchedAt time.Time) ([]models.Weather, error) {
	var response timelinesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if len(response.Data.Timelines) == 0 {
		return nil, ErrEmptyTimeline
	}

	step := period.Step()
	var out []models.Weather
	for _, iv := range response.Data.Timelines[0].Intervals {
		code := iv.Values.WeatherCode
		if period == models.PeriodDay {
			code = iv.Values.WeatherCodeDay
		}
		if iv.Values.Temperature == nil || code == nil || iv.StartTime.IsZero() {
			continue
		}

		local := iv.StartTime.In(tz)
		hour := 0
		if period == models.PeriodHour {
			hour = local.Hour()
		}

		out = append(out, models.Weather{
			LocationID:  loc.ID,
			Timestamp:   fetchedAt,
			Step:        step,
			Date:        local.Format(models.DateLayout),
			Hour:        hour,
			Temp:        int(math.Round(*iv.Values.Temperature)),
			WeatherCode: code.String(),
		})
	}

	if len(out) == 0 {
		return nil, ErrEmptyTimeline
	}
	return out, nil
}

// IsUpstreamFailure reports whether err came from the forecast provider
// rather than from local storage.
func IsUpstreamFailure(err error) bool {
	return errors.Is(err, ErrUpstreamRateLimited) ||
		errors.Is(err, ErrUpstreamBadRequest) ||
		errors.Is(err, ErrUpstreamStatus) ||
		errors.Is(err, context.DeadlineExceeded)
}

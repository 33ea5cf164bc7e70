package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"weather-dashboard/pkg/logger"
	"weather-dashboard/pkg/metrics"
)

const (
	GoogleTimezoneBaseURL = "https://maps.googleapis.com/maps/api/timezone/json"
	DefaultTimezone       = "America/Los_Angeles"
)

var ErrTimezoneMissing = errors.New("response has no timeZoneId")

// TimezoneResult carries the resolved name. Fallback is set, together with
// Err, when Name is the configured default standing in for a failed lookup.
type TimezoneResult struct {
	Name     string
	Fallback bool
	Err      error
}

type TimezoneOptions struct {
	BaseURL  string
	APIKey   string
	Default  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Metrics  *metrics.WeatherMetrics
}

type TimezoneRepository struct {
	baseURL    string
	apiKey     string
	fallback   string
	timeout    time.Duration
	httpClient HTTPClient
	cache      *gocache.Cache
	metrics    *metrics.WeatherMetrics
	now        func() time.Time
	l          *logger.Logger
}

func NewTimezoneRepository(opts TimezoneOptions, httpClient HTTPClient, l *logger.Logger) *TimezoneRepository {
	if opts.BaseURL == "" {
		opts.BaseURL = GoogleTimezoneBaseURL
	}
	if opts.Default == "" {
		opts.Default = DefaultTimezone
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}

	return &TimezoneRepository{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		fallback:   opts.Default,
		timeout:    opts.Timeout,
		httpClient: httpClient,
		cache:      gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
		metrics:    opts.Metrics,
		now:        time.Now,
		l:          l,
	}
}

type googleTimezoneResponse struct {
	Status       string `json:"status"`
	TimeZoneID   string `json:"timeZoneId"`
	ErrorMessage string `json:"errorMessage"`
}

// ResolveTimezone never fails the caller: any problem yields the default
// name with Fallback set.
func (r *TimezoneRepository) ResolveTimezone(ctx context.Context, lat, long string) TimezoneResult {
	key := lat + "," + long
	if name, ok := r.cache.Get(key); ok {
		return TimezoneResult{Name: name.(string)}
	}

	name, err := r.lookup(ctx, lat, long)
	if err != nil {
		r.l.Warning("timezone lookup failed, using default timezone", map[string]any{
			"location": key,
			"default":  r.fallback,
			"err":      err.Error(),
		})
		r.metrics.ObserveTimezoneFallback()
		return TimezoneResult{Name: r.fallback, Fallback: true, Err: err}
	}

	r.cache.SetDefault(key, name)
	return TimezoneResult{Name: name}
}

func (r *TimezoneRepository) lookup(ctx context.Context, lat, long string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("location", lat+","+long)
	q.Set("timestamp", strconv.FormatInt(r.now().Unix(), 10))
	q.Set("key", r.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.metrics.ObserveUpstream(metrics.APITimezone, "error", time.Since(start))
		return "", fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()
	r.metrics.ObserveUpstream(metrics.APITimezone, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	var response googleTimezoneResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if response.TimeZoneID == "" {
		return "", fmt.Errorf("%w (status %q: %s)", ErrTimezoneMissing, response.Status, response.ErrorMessage)
	}
	if _, err := time.LoadLocation(response.TimeZoneID); err != nil {
		return "", fmt.Errorf("unknown timezone %q: %w", response.TimeZoneID, err)
	}

	return response.TimeZoneID, nil
}

// Package metrics exposes Prometheus counters for the weather cache and the
// upstream APIs it calls.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "weather_dashboard"

// Upstream API labels.
const (
	APITomorrowIO = "tomorrowio"
	APITimezone   = "timezone"
)

// WeatherMetrics records cache outcomes and upstream calls. All methods are
// safe on a nil receiver so components can run without metrics.
type WeatherMetrics struct {
	registry *prometheus.Registry

	displaysTotal         *prometheus.CounterVec
	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec
	observationsStored    prometheus.Counter
	timezoneFallbacks     prometheus.Counter
}

func New() (*WeatherMetrics, error) {
	m := &WeatherMetrics{
		registry: prometheus.NewRegistry(),

		displaysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "weather_displays_total",
				Help:      "Weather display records served, by period and source",
			},
			[]string{"period", "source"}, // source: cache, fetched, unavailable
		),
		upstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Requests sent to upstream APIs, by api and outcome",
			},
			[]string{"api", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Upstream request latency",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"api"},
		),
		observationsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "observations_stored_total",
			Help:      "Weather observations persisted after a successful fetch",
		}),
		timezoneFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timezone_fallbacks_total",
			Help:      "Timezone lookups answered with the default timezone",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.displaysTotal,
		m.upstreamRequestsTotal,
		m.upstreamDuration,
		m.observationsStored,
		m.timezoneFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return m, nil
}

func (m *WeatherMetrics) Registry() prometheus.Gatherer {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *WeatherMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WeatherMetrics) ObserveDisplay(period, source string) {
	if m == nil {
		return
	}
	m.displaysTotal.WithLabelValues(period, source).Inc()
}

// ObserveUpstream records one upstream call. status is the HTTP status code,
// or "error" when no response arrived.
func (m *WeatherMetrics) ObserveUpstream(api, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequestsTotal.WithLabelValues(api, status).Inc()
	m.upstreamDuration.WithLabelValues(api).Observe(took.Seconds())
}

func (m *WeatherMetrics) ObserveStored(n int) {
	if m == nil {
		return
	}
	m.observationsStored.Add(float64(n))
}

func (m *WeatherMetrics) ObserveTimezoneFallback() {
	if m == nil {
		return
	}
	m.timezoneFallbacks.Inc()
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	refreshRuns     *prometheus.CounterVec
	tasksCreated    *prometheus.CounterVec
}

// New registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growmate_cache_lookups_total",
				Help: "External data cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),
		refreshRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growmate_weather_refresh_total",
				Help: "Background weather refreshes by location and result",
			},
			[]string{"location", "result"},
		),
		tasksCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growmate_tasks_created_total",
				Help: "Garden tasks created by origin",
			},
			[]string{"origin"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.cacheLookups,
		m.refreshRuns,
		m.tasksCreated,
	)
	return m
}

// Middleware records request counts and latencies per route.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			m.requestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(c.Request().Method, c.Path()).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit counts a lookup served from cache. Safe on a nil receiver.
func (m *Metrics) CacheHit(cache string) {
	if m != nil {
		m.cacheLookups.WithLabelValues(cache, "hit").Inc()
	}
}

// CacheMiss counts a lookup that went to the upstream API.
func (m *Metrics) CacheMiss(cache string) {
	if m != nil {
		m.cacheLookups.WithLabelValues(cache, "miss").Inc()
	}
}

// RefreshResult counts one background refresh of a location.
func (m *Metrics) RefreshResult(location string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.refreshRuns.WithLabelValues(location, result).Inc()
}

// TaskCreated counts a created task by origin ("manual", "plant", "knowledge_base", "recurrence").
func (m *Metrics) TaskCreated(origin string) {
	if m != nil {
		m.tasksCreated.WithLabelValues(origin).Inc()
	}
}

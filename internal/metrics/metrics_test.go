package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequestsByRoute(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/Gardens/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/fail", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusForbidden)
	})

	for _, path := range []string{"/api/Gardens/a", "/api/Gardens/b", "/api/fail"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/Gardens/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/fail", "403")))
}

func TestDomainCounters(t *testing.T) {
	m := New()

	m.CacheHit("weather")
	m.CacheHit("weather")
	m.CacheMiss("weather")
	m.RefreshResult("London", nil)
	m.RefreshResult("Tokyo", errors.New("timeout"))
	m.TaskCreated("recurrence")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("weather", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("weather", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshRuns.WithLabelValues("London", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.refreshRuns.WithLabelValues("Tokyo", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasksCreated.WithLabelValues("recurrence")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("weather")
		m.CacheMiss("catalog")
		m.RefreshResult("London", nil)
		m.TaskCreated("manual")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.TaskCreated("plant")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `growmate_tasks_created_total{origin="plant"} 1`)
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "growmate/internal/errors"
	"growmate/internal/external"
)

func weatherServer(t *testing.T, hits *int32, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("quota exceeded"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"resolvedAddress":"London","days":[{"datetime":"2024-05-01","temp":14.2,"conditions":"Rain"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherService_CachesWithinTTL(t *testing.T) {
	var hits int32
	srv := weatherServer(t, &hits, http.StatusOK)
	clk := clock.NewMock()
	svc := NewWeatherService(external.NewWeatherClient(srv.URL, "key", srv.Client()), 30*time.Minute, clk, nil)
	ctx := context.Background()

	day, err := svc.Get(ctx, "London")
	require.NoError(t, err)
	assert.Equal(t, "Rain", day.Conditions)

	clk.Add(29 * time.Minute)
	_, err = svc.Get(ctx, "  London ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	clk.Add(time.Minute)
	_, err = svc.Get(ctx, "London")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestWeatherService_RefreshBypassesCache(t *testing.T) {
	var hits int32
	srv := weatherServer(t, &hits, http.StatusOK)
	svc := NewWeatherService(external.NewWeatherClient(srv.URL, "key", srv.Client()), time.Hour, clock.NewMock(), nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, "Tokyo")
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, "Tokyo")
	require.NoError(t, err)
	_, err = svc.Get(ctx, "Tokyo")
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestWeatherService_UpstreamErrorIsNotCached(t *testing.T) {
	var hits int32
	srv := weatherServer(t, &hits, http.StatusTooManyRequests)
	svc := NewWeatherService(external.NewWeatherClient(srv.URL, "key", srv.Client()), time.Hour, clock.NewMock(), nil)

	for i := 0; i < 2; i++ {
		_, err := svc.Get(context.Background(), "Paris")
		var upstream *apperrors.UpstreamError
		require.ErrorAs(t, err, &upstream)
		assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCatalogService_CachesDetailsAndPages(t *testing.T) {
	var detailHits, pageHits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/species/details/42":
			atomic.AddInt32(&detailHits, 1)
			_, _ = w.Write([]byte(`{"id":42,"common_name":"basil","watering":"Frequent"}`))
		case r.URL.Path == "/species-list":
			atomic.AddInt32(&pageHits, 1)
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "rose", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(`{"data":[{"id":7,"common_name":"rose"}],"current_page":2,"last_page":3}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := NewCatalogService(external.NewCatalogClient(srv.URL, "key", srv.Client()), 24*time.Hour, clock.NewMock(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		plant, err := svc.PlantDetails(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "Frequent", plant.Watering)

		page, err := svc.Browse(ctx, "Rose ", 2)
		require.NoError(t, err)
		assert.Equal(t, 2, page.CurrentPage)
		require.Len(t, page.Data, 1)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&detailHits))
	assert.Equal(t, int32(1), atomic.LoadInt32(&pageHits))
}

func TestSplitPageKey(t *testing.T) {
	query, page := splitPageKey(pageKey("Tomato|Cherry", 3))
	assert.Equal(t, "tomato|cherry", query)
	assert.Equal(t, 3, page)
}

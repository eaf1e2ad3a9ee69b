package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growmate/internal/logger"
	"growmate/internal/model"
)

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeSource) Refresh(ctx context.Context, location string) (model.DayWeather, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, location)
	if f.fail[location] {
		return model.DayWeather{}, errors.New("upstream down")
	}
	return model.DayWeather{Conditions: "Clear"}, nil
}

func (f *fakeSource) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type outcomes struct {
	mu     sync.Mutex
	failed []string
}

func (o *outcomes) RefreshResult(location string, err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, location)
}

func TestWeatherRefresher_RefreshesOnStartAndEveryTick(t *testing.T) {
	clk := clock.NewMock()
	source := &fakeSource{fail: map[string]bool{"London": true}}
	rec := &outcomes{}
	refresher := NewWeatherRefresher(source, 30*time.Minute, logger.NewNop(), WithClock(clk), WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		refresher.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return source.count() == 3 }, time.Second, 5*time.Millisecond)

	clk.Add(29 * time.Minute)
	assert.Equal(t, 3, source.count())

	clk.Add(time.Minute)
	require.Eventually(t, func() bool { return source.count() == 6 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancellation")
	}

	source.mu.Lock()
	assert.Equal(t, []string{"New York", "London", "Tokyo", "New York", "London", "Tokyo"}, source.calls)
	source.mu.Unlock()

	rec.mu.Lock()
	assert.Equal(t, []string{"London", "London"}, rec.failed)
	rec.mu.Unlock()
}

func TestWeatherRefresher_Defaults(t *testing.T) {
	r := NewWeatherRefresher(&fakeSource{}, 0, nil, WithLocations("Paris"))
	assert.Equal(t, DefaultRefreshInterval, r.interval)
	assert.Equal(t, []string{"Paris"}, r.locations)
}

package worker

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"growmate/internal/logger"
	"growmate/internal/model"
)

// DefaultLocations are kept warm in the weather cache.
var DefaultLocations = []string{"New York", "London", "Tokyo"}

// DefaultRefreshInterval is the delay between refresh rounds.
const DefaultRefreshInterval = 30 * time.Minute

// WeatherSource reloads a location into the weather cache.
type WeatherSource interface {
	Refresh(ctx context.Context, location string) (model.DayWeather, error)
}

// RefreshRecorder counts refresh outcomes.
type RefreshRecorder interface {
	RefreshResult(location string, err error)
}

// WeatherRefresher periodically reloads a fixed set of locations.
type WeatherRefresher struct {
	source    WeatherSource
	locations []string
	interval  time.Duration
	clock     clock.Clock
	recorder  RefreshRecorder
	logger    *logger.Logger
}

// Option configures a WeatherRefresher.
type Option func(*WeatherRefresher)

// WithLocations overrides the refreshed locations.
func WithLocations(locations ...string) Option {
	return func(r *WeatherRefresher) { r.locations = locations }
}

// WithClock sets the clock driving the ticker.
func WithClock(clk clock.Clock) Option {
	return func(r *WeatherRefresher) { r.clock = clk }
}

// WithRecorder sets the outcome recorder.
func WithRecorder(rec RefreshRecorder) Option {
	return func(r *WeatherRefresher) { r.recorder = rec }
}

// NewWeatherRefresher creates a refresher. A non-positive interval uses
// DefaultRefreshInterval.
func NewWeatherRefresher(source WeatherSource, interval time.Duration, log *logger.Logger, opts ...Option) *WeatherRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if log == nil {
		log = logger.NewNop()
	}
	r := &WeatherRefresher{
		source:    source,
		locations: DefaultLocations,
		interval:  interval,
		clock:     clock.New(),
		logger:    log.WithComponent("weather_refresher"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run refreshes every location once, then once per interval until ctx is
// cancelled. Cancellation is observed between rounds only.
func (r *WeatherRefresher) Run(ctx context.Context) {
	ticker := r.clock.Ticker(r.interval)
	defer ticker.Stop()

	r.logger.Infow("weather refresher started", "interval", r.interval.String(), "locations", r.locations)
	r.refreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("weather refresher stopped")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *WeatherRefresher) refreshAll(ctx context.Context) {
	for _, location := range r.locations {
		_, err := r.source.Refresh(ctx, location)
		if r.recorder != nil {
			r.recorder.RefreshResult(location, err)
		}
		if err != nil {
			r.logger.WithError(err).Errorw("weather refresh failed", "location", location)
			continue
		}
		r.logger.Debugw("weather refreshed", "location", location)
	}
}

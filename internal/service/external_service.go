package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"growmate/internal/cache"
	"growmate/internal/model"
)

// WeatherFetcher loads current weather from the upstream API.
type WeatherFetcher interface {
	Today(ctx context.Context, location string) (model.DayWeather, error)
}

// SpeciesFetcher loads plant catalog data from the upstream API.
type SpeciesFetcher interface {
	Species(ctx context.Context, id string) (model.PlantData, error)
	Search(ctx context.Context, query string, page int) (model.PlantPage, error)
}

// WeatherService serves cached weather per location.
type WeatherService interface {
	Get(ctx context.Context, location string) (model.DayWeather, error)
	// Refresh reloads location from upstream regardless of cache state.
	Refresh(ctx context.Context, location string) (model.DayWeather, error)
}

type weatherService struct {
	cache *cache.TTL[model.DayWeather]
}

// NewWeatherService caches fetcher results for ttl.
func NewWeatherService(fetcher WeatherFetcher, ttl time.Duration, clk clock.Clock, rec cache.Recorder) WeatherService {
	load := func(ctx context.Context, location string) (model.DayWeather, error) {
		return fetcher.Today(ctx, location)
	}
	var opts []cache.Option[model.DayWeather]
	if rec != nil {
		opts = append(opts, cache.WithRecorder[model.DayWeather](rec))
	}
	return &weatherService{cache: cache.NewTTL[model.DayWeather]("weather", ttl, clk, load, opts...)}
}

func (s *weatherService) Get(ctx context.Context, location string) (model.DayWeather, error) {
	return s.cache.Get(ctx, normalizeLocation(location))
}

func (s *weatherService) Refresh(ctx context.Context, location string) (model.DayWeather, error) {
	return s.cache.Refresh(ctx, normalizeLocation(location))
}

func normalizeLocation(location string) string {
	return strings.Join(strings.Fields(location), " ")
}

// CatalogService serves cached plant catalog lookups.
type CatalogService interface {
	PlantDetails(ctx context.Context, id string) (model.PlantData, error)
	Browse(ctx context.Context, query string, page int) (model.PlantPage, error)
}

type catalogService struct {
	details *cache.TTL[model.PlantData]
	pages   *cache.TTL[model.PlantPage]
}

// NewCatalogService caches detail and browse results for ttl each.
func NewCatalogService(fetcher SpeciesFetcher, ttl time.Duration, clk clock.Clock, rec cache.Recorder) CatalogService {
	loadDetails := func(ctx context.Context, id string) (model.PlantData, error) {
		return fetcher.Species(ctx, id)
	}
	loadPage := func(ctx context.Context, key string) (model.PlantPage, error) {
		query, page := splitPageKey(key)
		return fetcher.Search(ctx, query, page)
	}

	var detailOpts []cache.Option[model.PlantData]
	var pageOpts []cache.Option[model.PlantPage]
	if rec != nil {
		detailOpts = append(detailOpts, cache.WithRecorder[model.PlantData](rec))
		pageOpts = append(pageOpts, cache.WithRecorder[model.PlantPage](rec))
	}
	return &catalogService{
		details: cache.NewTTL[model.PlantData]("plant", ttl, clk, loadDetails, detailOpts...),
		pages:   cache.NewTTL[model.PlantPage]("plant_browse", ttl, clk, loadPage, pageOpts...),
	}
}

func (s *catalogService) PlantDetails(ctx context.Context, id string) (model.PlantData, error) {
	return s.details.Get(ctx, strings.TrimSpace(id))
}

func (s *catalogService) Browse(ctx context.Context, query string, page int) (model.PlantPage, error) {
	if page < 1 {
		page = 1
	}
	return s.pages.Get(ctx, pageKey(query, page))
}

func pageKey(query string, page int) string {
	return fmt.Sprintf("%d|%s", page, strings.ToLower(strings.TrimSpace(query)))
}

func splitPageKey(key string) (string, int) {
	prefix, query, _ := strings.Cut(key, "|")
	page, err := strconv.Atoi(prefix)
	if err != nil {
		page = 1
	}
	return query, page
}

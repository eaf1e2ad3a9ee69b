package external

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	apperrors "growmate/internal/errors"
	"growmate/internal/model"
)

const weatherService = "weather"

// WeatherClient reads today's conditions from a weather timeline API.
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewWeatherClient creates a client for baseURL. A nil httpClient uses a default with timeout.
func NewWeatherClient(baseURL, apiKey string, httpClient *http.Client) *WeatherClient {
	return &WeatherClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: orDefault(httpClient),
	}
}

// Today returns the first day of the timeline for location.
func (c *WeatherClient) Today(ctx context.Context, location string) (model.DayWeather, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("unitGroup", "metric")
	q.Set("include", "days")
	endpoint := c.baseURL + "/" + url.PathEscape(location) + "/today?" + q.Encode()

	var resp model.WeatherResponse
	if err := getJSON(ctx, c.httpClient, weatherService, endpoint, &resp); err != nil {
		return model.DayWeather{}, err
	}
	if len(resp.Days) == 0 {
		return model.DayWeather{}, &apperrors.UpstreamError{Service: weatherService, Message: "weather data not found"}
	}
	return resp.Days[0], nil
}

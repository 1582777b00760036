package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"weatherdash/weather-dashboard/internal/weather"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherClient fetches and normalizes OpenWeatherMap data. The API key
// is required; calls fail with a descriptive error when it is absent so the
// other provider stays usable.
type OpenWeatherClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff BackoffConfig
}

type OpenWeatherOption func(*OpenWeatherClient)

func WithOpenWeatherBackoff(b BackoffConfig) OpenWeatherOption {
	return func(c *OpenWeatherClient) { c.backoff = b }
}

func NewOpenWeatherClient(client *http.Client, apiKey string, opts ...OpenWeatherOption) *OpenWeatherClient {
	c := &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: openWeatherBaseURL,
		client:  client,
		circuit: newCircuitBreaker("openweathermap"),
		backoff: defaultBackoff(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *OpenWeatherClient) Name() weather.Provider {
	return weather.ProviderOpenWeatherMap
}

func (c *OpenWeatherClient) endpoint(path string, loc weather.Location) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("OpenWeatherMap API key not configured")
	}

	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%v", loc.Latitude))
	values.Set("lon", fmt.Sprintf("%v", loc.Longitude))
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, values.Encode()), nil
}

// Current fetches and normalizes the current conditions for loc.
func (c *OpenWeatherClient) Current(ctx context.Context, loc weather.Location) (*weather.CurrentConditions, error) {
	u, err := c.endpoint("weather", loc)
	if err != nil {
		return nil, err
	}

	var raw weather.OpenWeatherCurrent
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &raw); err != nil {
		return nil, fmt.Errorf("openweathermap current request failed: %w", err)
	}

	return weather.NormalizeOpenWeatherCurrent(&raw)
}

// Forecast fetches the 3-hourly series and normalizes it into daily entries.
func (c *OpenWeatherClient) Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastDay, error) {
	u, err := c.endpoint("forecast", loc)
	if err != nil {
		return nil, err
	}

	var raw weather.OpenWeatherForecast
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &raw); err != nil {
		return nil, fmt.Errorf("openweathermap forecast request failed: %w", err)
	}

	return weather.NormalizeOpenWeatherForecast(&raw)
}

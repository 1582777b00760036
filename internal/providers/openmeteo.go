package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"weatherdash/weather-dashboard/internal/weather"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

const (
	openMeteoCurrentFields = "temperature_2m,relative_humidity_2m,pressure_msl,wind_speed_10m,wind_direction_10m,precipitation,cloud_cover"
	openMeteoDailyFields   = "temperature_2m_max,temperature_2m_min,precipitation_probability_max,precipitation_sum,wind_speed_10m_max,wind_direction_10m_dominant"
)

// OpenMeteoClient fetches and normalizes Open-Meteo data. No API key needed.
type OpenMeteoClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff BackoffConfig
}

type OpenMeteoOption func(*OpenMeteoClient)

func WithOpenMeteoBackoff(b BackoffConfig) OpenMeteoOption {
	return func(c *OpenMeteoClient) { c.backoff = b }
}

func NewOpenMeteoClient(client *http.Client, opts ...OpenMeteoOption) *OpenMeteoClient {
	c := &OpenMeteoClient{
		baseURL: openMeteoBaseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo"),
		backoff: defaultBackoff(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *OpenMeteoClient) Name() weather.Provider {
	return weather.ProviderOpenMeteo
}

func (c *OpenMeteoClient) endpoint(loc weather.Location, fieldParam, fields string) string {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%v", loc.Latitude))
	values.Set("longitude", fmt.Sprintf("%v", loc.Longitude))
	values.Set(fieldParam, fields)

	timezone := loc.Timezone
	if timezone == "" {
		timezone = "auto"
	}
	values.Set("timezone", timezone)

	return fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
}

// Current fetches and normalizes the current conditions for loc.
func (c *OpenMeteoClient) Current(ctx context.Context, loc weather.Location) (*weather.CurrentConditions, error) {
	u := c.endpoint(loc, "current", openMeteoCurrentFields)

	var raw weather.OpenMeteoCurrent
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &raw); err != nil {
		return nil, fmt.Errorf("open-meteo current request failed: %w", err)
	}

	return weather.NormalizeOpenMeteoCurrent(&raw)
}

// Forecast fetches the daily forecast and normalizes it.
func (c *OpenMeteoClient) Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastDay, error) {
	u := c.endpoint(loc, "daily", openMeteoDailyFields)

	var raw weather.OpenMeteoForecast
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &raw); err != nil {
		return nil, fmt.Errorf("open-meteo forecast request failed: %w", err)
	}

	return weather.NormalizeOpenMeteoForecast(&raw)
}

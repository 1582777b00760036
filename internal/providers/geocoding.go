package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"weatherdash/weather-dashboard/internal/weather"
)

const geocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient resolves place names to locations via the Open-Meteo
// geocoding API.
type GeocodingClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff BackoffConfig
}

type GeocodingOption func(*GeocodingClient)

func WithGeocodingBackoff(b BackoffConfig) GeocodingOption {
	return func(c *GeocodingClient) { c.backoff = b }
}

func NewGeocodingClient(client *http.Client, opts ...GeocodingOption) *GeocodingClient {
	c := &GeocodingClient{
		baseURL: geocodingBaseURL,
		client:  client,
		circuit: newCircuitBreaker("geocoding"),
		backoff: defaultBackoff(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geocodeResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// Search returns up to ten locations matching query.
func (c *GeocodingClient) Search(ctx context.Context, query string) ([]weather.Location, error) {
	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "10")
	values.Set("language", "en")
	values.Set("format", "json")

	var raw struct {
		Results []geocodeResult `json:"results"`
	}
	u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &raw); err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}

	locations := make([]weather.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		id := fmt.Sprintf("%d", r.ID)
		if r.ID == 0 {
			id = fmt.Sprintf("%.3f:%.3f", r.Latitude, r.Longitude)
		}
		locations = append(locations, weather.Location{
			ID:        id,
			Name:      r.Name,
			Admin1:    r.Admin1,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Timezone:  r.Timezone,
		})
	}

	return locations, nil
}

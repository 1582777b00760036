package weather

import "fmt"

// Provider identifies one of the upstream weather data sources.
type Provider string

const (
	ProviderOpenWeatherMap Provider = "OpenWeatherMap"
	ProviderOpenMeteo      Provider = "OpenMeteo"
)

// Location is a user-selected place the dashboard compares providers for.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Admin1    string  `json:"admin1,omitempty"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DefaultID returns the fallback identifier used when the caller supplies none.
func (l Location) DefaultID() string {
	return fmt.Sprintf("%v,%v", l.Latitude, l.Longitude)
}

// CurrentConditions is the unified shape for a single provider's current
// weather reading. Timestamp is ISO-8601.
type CurrentConditions struct {
	Timestamp     string  `json:"timestamp"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	Precipitation float64 `json:"precipitation"`
	CloudCover    float64 `json:"cloudCover"`
}

// ForecastDay is the unified shape for one calendar day of forecast data.
type ForecastDay struct {
	Date                     string  `json:"date"`
	MaxTemperature           float64 `json:"maxTemperature"`
	MinTemperature           float64 `json:"minTemperature"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	PrecipitationAmount      float64 `json:"precipitationAmount"`
	WindSpeed                float64 `json:"windSpeed"`
	WindDirection            float64 `json:"windDirection"`
}

// ProviderResult carries one provider's outcome for a single request.
// Data and Error are mutually exclusive; both are absent only when the
// provider was rate limited and no cached value existed.
type ProviderResult[T any] struct {
	Provider    Provider `json:"provider"`
	FromCache   bool     `json:"fromCache"`
	RateLimited bool     `json:"rateLimited"`
	Data        *T       `json:"data,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// CurrentResponse is the multi-provider response for one location.
type CurrentResponse struct {
	Location  Location                            `json:"location"`
	Providers []ProviderResult[CurrentConditions] `json:"providers"`
}

// ForecastResponse is the multi-provider forecast response for one location.
type ForecastResponse struct {
	Location  Location                        `json:"location"`
	Providers []ProviderResult[[]ForecastDay] `json:"providers"`
}

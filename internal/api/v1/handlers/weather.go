package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"weatherdash/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Aggregation is the slice of the aggregator the HTTP layer depends on.
type Aggregation interface {
	Current(ctx context.Context, loc weather.Location) (weather.CurrentResponse, int)
	Forecast(ctx context.Context, loc weather.Location) (weather.ForecastResponse, int)
}

// Geocoder resolves free-text place queries to locations.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]weather.Location, error)
}

type WeatherHandler struct {
	aggregator Aggregation
	geocoder   Geocoder
	timeout    time.Duration
}

func NewWeatherHandler(aggregator Aggregation, geocoder Geocoder, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		aggregator: aggregator,
		geocoder:   geocoder,
		timeout:    timeout,
	}
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch r.URL.Path {
	case "/weather/current":
		h.GetCurrent(w, r)
	case "/weather/forecast":
		h.GetForecast(w, r)
	case "/geocode":
		h.Geocode(w, r)
	case "/health":
		h.Health(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "not found")
	}
}

// locationQuery carries the coordinate bounds checked on every weather
// request.
type locationQuery struct {
	Latitude  float64 `validate:"min=-90,max=90"`
	Longitude float64 `validate:"min=-180,max=180"`
}

// parseLocation builds the location from query parameters. Unparseable or
// out-of-range coordinates are rejected; everything else has defaults.
func parseLocation(r *http.Request) (weather.Location, error) {
	q := r.URL.Query()

	latitude, latErr := strconv.ParseFloat(q.Get("latitude"), 64)
	longitude, lonErr := strconv.ParseFloat(q.Get("longitude"), 64)
	if latErr != nil || lonErr != nil {
		return weather.Location{}, errInvalidCoordinates
	}

	if err := validate.Struct(locationQuery{Latitude: latitude, Longitude: longitude}); err != nil {
		return weather.Location{}, errInvalidCoordinates
	}

	name := q.Get("name")
	if name == "" {
		name = "Unknown"
	}

	loc := weather.Location{
		ID:        q.Get("id"),
		Name:      name,
		Admin1:    q.Get("admin1"),
		Country:   q.Get("country"),
		Latitude:  latitude,
		Longitude: longitude,
		Timezone:  q.Get("timezone"),
	}
	if loc.ID == "" {
		loc.ID = loc.DefaultID()
	}

	return loc, nil
}

func (h *WeatherHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, status := h.aggregator.Current(ctx, loc)
	respondWithJSON(w, status, response)
}

func (h *WeatherHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	loc, err := parseLocation(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	response, status := h.aggregator.Forecast(ctx, loc)
	respondWithJSON(w, status, response)
}

func (h *WeatherHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(query) < 2 {
		// Too short to search; an empty result set, not an error.
		respondWithJSON(w, http.StatusOK, GeocodeResponse{Results: []weather.Location{}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results, err := h.geocoder.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("geocode lookup failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch locations")
		return
	}

	if results == nil {
		results = []weather.Location{}
	}
	respondWithJSON(w, http.StatusOK, GeocodeResponse{Results: results})
}

func (h *WeatherHandler) Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

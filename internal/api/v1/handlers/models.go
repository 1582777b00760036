package handlers

import (
	"errors"

	"weatherdash/weather-dashboard/internal/weather"
)

var errInvalidCoordinates = errors.New("Invalid coordinates supplied")

// GeocodeResponse wraps geocoding search results.
type GeocodeResponse struct {
	Results []weather.Location `json:"results"`
}

// ErrorResponse is the uniform error envelope for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"weatherdash/weather-dashboard/config"
)

func TestParseTrackedLocations(t *testing.T) {
	conf := &config.Config{TrackedLocations: "Berlin,52.52,13.405; Paris,48.857,2.351"}

	locations := conf.ParseTrackedLocations()

	assert.Len(t, locations, 2)
	assert.Equal(t, "Berlin", locations[0].Name)
	assert.Equal(t, 52.52, locations[0].Latitude)
	assert.Equal(t, "52.52,13.405", locations[0].ID)
	assert.Equal(t, "Paris", locations[1].Name)
}

func TestParseTrackedLocationsSkipsMalformedEntries(t *testing.T) {
	conf := &config.Config{TrackedLocations: "Berlin,52.52;;Paris,48.857,oops;Madrid,40.417,-3.704"}

	locations := conf.ParseTrackedLocations()

	assert.Len(t, locations, 1)
	assert.Equal(t, "Madrid", locations[0].Name)
}

func TestParseTrackedLocationsEmpty(t *testing.T) {
	conf := &config.Config{}

	assert.Empty(t, conf.ParseTrackedLocations())
}

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"weatherdash/weather-dashboard/internal/weather"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	OpenWeatherAPIKey string

	CacheTTL         time.Duration
	ForecastCacheTTL time.Duration
	DailyRateLimit   int

	HistoryEnabled       bool
	DBName               string
	DBPassword           string
	DBUser               string
	DBPort               string
	DBHost               string
	HistoryRetentionDays int
	SnapshotInterval     time.Duration
	TrackedLocations     string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-dashboard")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 10)
	v.SetDefault("CACHE_TTL", 10*time.Minute)
	v.SetDefault("FORECAST_CACHE_TTL", 30*time.Minute)
	v.SetDefault("DAILY_RATE_LIMIT", 500)
	v.SetDefault("HISTORY_ENABLED", false)
	v.SetDefault("HISTORY_RETENTION_DAYS", 30)
	v.SetDefault("SNAPSHOT_INTERVAL", 15*time.Minute)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:          v.GetString("SERVICE_NAME"),
		ServerAddress:        v.GetString("SERVER_ADDRESS"),
		Env:                  v.GetString("ENV"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		HTTPTimeout:          v.GetInt32("HTTP_TIMEOUT"),
		OpenWeatherAPIKey:    v.GetString("OPENWEATHER_API_KEY"),
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		ForecastCacheTTL:     v.GetDuration("FORECAST_CACHE_TTL"),
		DailyRateLimit:       v.GetInt("DAILY_RATE_LIMIT"),
		HistoryEnabled:       v.GetBool("HISTORY_ENABLED"),
		DBName:               v.GetString("DATABASE_NAME"),
		DBPassword:           v.GetString("DATABASE_PASSWORD"),
		DBUser:               v.GetString("DATABASE_USER"),
		DBPort:               v.GetString("DATABASE_PORT"),
		DBHost:               v.GetString("DATABASE_HOST"),
		HistoryRetentionDays: v.GetInt("HISTORY_RETENTION_DAYS"),
		SnapshotInterval:     v.GetDuration("SNAPSHOT_INTERVAL"),
		TrackedLocations:     v.GetString("TRACKED_LOCATIONS"),
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

func (c *Config) HistoryRetention() time.Duration {
	return time.Duration(c.HistoryRetentionDays) * 24 * time.Hour
}

// ParseTrackedLocations parses the TRACKED_LOCATIONS value, a semicolon
// separated list of name,latitude,longitude triples, e.g.
// "Berlin,52.52,13.405;Paris,48.857,2.351". Malformed entries are skipped
// with a warning.
func (c *Config) ParseTrackedLocations() []weather.Location {
	var locations []weather.Location
	for _, raw := range strings.Split(c.TrackedLocations, ";") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			log.Warn().Str("entry", raw).Msg("skipping malformed tracked location")
			continue
		}

		latitude, latErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		longitude, lonErr := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if latErr != nil || lonErr != nil {
			log.Warn().Str("entry", raw).Msg("skipping malformed tracked location")
			continue
		}

		loc := weather.Location{
			Name:      strings.TrimSpace(parts[0]),
			Latitude:  latitude,
			Longitude: longitude,
		}
		loc.ID = loc.DefaultID()
		locations = append(locations, loc)
	}
	return locations
}

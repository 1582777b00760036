package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"weatherdash/weather-dashboard/internal/weather"
)

// ErrSuperseded is returned when a newer fetch cycle started before this one
// finished; its results were discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer cycle")

// Aggregation is the slice of the aggregator the coordinator consumes.
type Aggregation interface {
	Current(ctx context.Context, loc weather.Location) (weather.CurrentResponse, int)
	Forecast(ctx context.Context, loc weather.Location) (weather.ForecastResponse, int)
}

// LocationWeather is the assembled view for one location: current conditions
// and forecast side by side, with the rate-limit signal surfaced.
type LocationWeather struct {
	Location    weather.Location         `json:"location"`
	Current     weather.CurrentResponse  `json:"current"`
	Forecast    weather.ForecastResponse `json:"forecast"`
	RateLimited bool                     `json:"rateLimited"`
}

// Snapshot is the last completed fetch cycle.
type Snapshot struct {
	Locations []LocationWeather `json:"locations"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Coordinator fans weather fetches out across locations and keeps only the
// newest cycle. Every call to Fetch bumps a generation counter; a cycle whose
// generation is stale by the time it completes is discarded, so a slow older
// request can never overwrite the data of a newer one.
type Coordinator struct {
	aggregator Aggregation

	generation atomic.Uint64
	completed  atomic.Uint64

	mu        sync.Mutex
	locations []weather.Location
	snapshot  Snapshot
}

func NewCoordinator(aggregator Aggregation) *Coordinator {
	return &Coordinator{aggregator: aggregator}
}

// Fetch loads current conditions and forecasts for the given locations
// concurrently. It returns the assembled results, or ErrSuperseded when a
// newer Fetch or Refresh started while this one was in flight.
func (c *Coordinator) Fetch(ctx context.Context, locations []weather.Location) ([]LocationWeather, error) {
	generation := c.generation.Add(1)

	c.mu.Lock()
	c.locations = append([]weather.Location(nil), locations...)
	c.mu.Unlock()

	results := make([]LocationWeather, len(locations))

	var wg sync.WaitGroup
	for i, loc := range locations {
		wg.Add(1)
		go func(i int, loc weather.Location) {
			defer wg.Done()

			var current weather.CurrentResponse
			var forecast weather.ForecastResponse
			var currentStatus, forecastStatus int

			var inner sync.WaitGroup
			inner.Add(2)
			go func() {
				defer inner.Done()
				current, currentStatus = c.aggregator.Current(ctx, loc)
			}()
			go func() {
				defer inner.Done()
				forecast, forecastStatus = c.aggregator.Forecast(ctx, loc)
			}()
			inner.Wait()

			results[i] = LocationWeather{
				Location:    loc,
				Current:     current,
				Forecast:    forecast,
				RateLimited: currentStatus == http.StatusTooManyRequests || forecastStatus == http.StatusTooManyRequests,
			}
		}(i, loc)
	}
	wg.Wait()

	c.mu.Lock()
	if c.generation.Load() != generation {
		c.mu.Unlock()
		log.Debug().Uint64("generation", generation).Msg("discarding superseded fetch cycle")
		return nil, ErrSuperseded
	}
	c.snapshot = Snapshot{Locations: results, UpdatedAt: time.Now().UTC()}
	c.completed.Store(generation)
	c.mu.Unlock()

	return results, nil
}

// Refresh re-runs the last fetch with the same locations.
func (c *Coordinator) Refresh(ctx context.Context) ([]LocationWeather, error) {
	c.mu.Lock()
	locations := append([]weather.Location(nil), c.locations...)
	c.mu.Unlock()

	return c.Fetch(ctx, locations)
}

// Loading reports whether a fetch cycle is in flight, i.e. the newest
// started cycle has not completed or been discarded yet.
func (c *Coordinator) Loading() bool {
	return c.generation.Load() != c.completed.Load()
}

// Last returns the most recent completed cycle. The zero Snapshot means no
// cycle has completed yet.
func (c *Coordinator) Last() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

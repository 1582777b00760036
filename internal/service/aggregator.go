package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
	"weatherdash/weather-dashboard/internal/ratelimit"
	"weatherdash/weather-dashboard/internal/ttlcache"
	"weatherdash/weather-dashboard/internal/weather"
)

const rateLimitMessage = "Daily rate limit reached"

// Source is one upstream weather provider as seen by the aggregator: it
// fetches and returns already-normalized data.
type Source interface {
	Name() weather.Provider
	Current(ctx context.Context, loc weather.Location) (*weather.CurrentConditions, error)
	Forecast(ctx context.Context, loc weather.Location) ([]weather.ForecastDay, error)
}

// Aggregator combines quota, cache and provider calls per (location,
// provider) and assembles multi-provider responses. All collaborators are
// injected so tests can run against isolated instances.
type Aggregator struct {
	sources       []Source
	limiter       *ratelimit.DailyLimiter
	currentCache  *ttlcache.Cache[weather.CurrentConditions]
	forecastCache *ttlcache.Cache[[]weather.ForecastDay]
}

func NewAggregator(
	sources []Source,
	limiter *ratelimit.DailyLimiter,
	currentCache *ttlcache.Cache[weather.CurrentConditions],
	forecastCache *ttlcache.Cache[[]weather.ForecastDay],
) *Aggregator {
	return &Aggregator{
		sources:       sources,
		limiter:       limiter,
		currentCache:  currentCache,
		forecastCache: forecastCache,
	}
}

type outcome[T any] struct {
	result weather.ProviderResult[T]
	status int
}

// fetchWithCacheAndQuota runs the shared per-provider algorithm: probe quota
// and cache, serve from cache when possible (cache wins over a fresh call
// even with quota left), otherwise consume quota, fetch, and cache the
// result. Any fetch failure is captured in the result instead of propagating,
// so sibling providers are unaffected.
func fetchWithCacheAndQuota[T any](
	ctx context.Context,
	cache *ttlcache.Cache[T],
	limiter *ratelimit.DailyLimiter,
	provider weather.Provider,
	key string,
	fetch func(context.Context) (T, error),
) outcome[T] {
	canConsume := limiter.CanConsume(string(provider))
	cached, haveCached := cache.Get(key)

	if !canConsume {
		if haveCached {
			return outcome[T]{
				result: weather.ProviderResult[T]{
					Provider:    provider,
					FromCache:   true,
					RateLimited: true,
					Data:        &cached,
				},
				status: http.StatusTooManyRequests,
			}
		}
		return outcome[T]{
			result: weather.ProviderResult[T]{
				Provider:    provider,
				RateLimited: true,
				Error:       rateLimitMessage,
			},
			status: http.StatusTooManyRequests,
		}
	}

	if haveCached {
		return outcome[T]{
			result: weather.ProviderResult[T]{
				Provider:  provider,
				FromCache: true,
				Data:      &cached,
			},
			status: http.StatusOK,
		}
	}

	fresh, err := fetchFresh(ctx, limiter, provider, fetch)
	if err != nil {
		log.Error().Err(err).Str("provider", string(provider)).Str("cache_key", key).Msg("provider fetch failed")
		return outcome[T]{
			result: weather.ProviderResult[T]{
				Provider: provider,
				Error:    err.Error(),
			},
			status: http.StatusInternalServerError,
		}
	}

	cache.Set(key, fresh)
	return outcome[T]{
		result: weather.ProviderResult[T]{
			Provider: provider,
			Data:     &fresh,
		},
		status: http.StatusOK,
	}
}

func fetchFresh[T any](ctx context.Context, limiter *ratelimit.DailyLimiter, provider weather.Provider, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := limiter.Consume(string(provider)); err != nil {
		return zero, err
	}
	return fetch(ctx)
}

// Current fetches current conditions for loc from every source concurrently
// and returns the assembled response with its overall HTTP status.
func (a *Aggregator) Current(ctx context.Context, loc weather.Location) (weather.CurrentResponse, int) {
	outcomes := make([]outcome[weather.CurrentConditions], len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			key := ttlcache.BuildKey("current", string(src.Name()), loc.Latitude, loc.Longitude)
			outcomes[i] = fetchWithCacheAndQuota(ctx, a.currentCache, a.limiter, src.Name(), key,
				func(ctx context.Context) (weather.CurrentConditions, error) {
					conditions, err := src.Current(ctx, loc)
					if err != nil {
						return weather.CurrentConditions{}, err
					}
					return *conditions, nil
				})
		}(i, src)
	}
	wg.Wait()

	response := weather.CurrentResponse{Location: loc}
	statuses := make([]int, 0, len(outcomes))
	for _, o := range outcomes {
		response.Providers = append(response.Providers, o.result)
		statuses = append(statuses, o.status)
	}

	return response, overallStatus(statuses)
}

// Forecast is the daily-forecast counterpart of Current.
func (a *Aggregator) Forecast(ctx context.Context, loc weather.Location) (weather.ForecastResponse, int) {
	outcomes := make([]outcome[[]weather.ForecastDay], len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			key := ttlcache.BuildKey("forecast", string(src.Name()), loc.Latitude, loc.Longitude)
			outcomes[i] = fetchWithCacheAndQuota(ctx, a.forecastCache, a.limiter, src.Name(), key,
				func(ctx context.Context) ([]weather.ForecastDay, error) {
					return src.Forecast(ctx, loc)
				})
		}(i, src)
	}
	wg.Wait()

	response := weather.ForecastResponse{Location: loc}
	statuses := make([]int, 0, len(outcomes))
	for _, o := range outcomes {
		response.Providers = append(response.Providers, o.result)
		statuses = append(statuses, o.status)
	}

	return response, overallStatus(statuses)
}

// overallStatus applies the triage rule: a rate-limit signal outranks an
// upstream failure, which outranks success.
func overallStatus(statuses []int) int {
	anyServerError := false
	for _, status := range statuses {
		if status == http.StatusTooManyRequests {
			return http.StatusTooManyRequests
		}
		if status >= 500 {
			anyServerError = true
		}
	}
	if anyServerError {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

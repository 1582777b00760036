package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"weatherdash/weather-dashboard/internal/db/history"
	"weatherdash/weather-dashboard/internal/weather"
)

const (
	jobTimeout    = 30 * time.Second
	sweepInterval = 10 * time.Minute
)

// Aggregation is the slice of the aggregator the snapshot job needs.
type Aggregation interface {
	Current(ctx context.Context, loc weather.Location) (weather.CurrentResponse, int)
}

// SnapshotStore persists captured readings and prunes old ones.
type SnapshotStore interface {
	SaveSnapshot(snapshot *history.Snapshot) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// Sweeper is any cache that can drop its expired entries.
type Sweeper interface {
	ClearExpired()
}

// Scheduler runs the background jobs: periodic snapshot capture for tracked
// locations, cache sweeps, and a daily history retention pass.
type Scheduler struct {
	scheduler        *gocron.Scheduler
	aggregator       Aggregation
	store            SnapshotStore
	sweepers         []Sweeper
	locations        []weather.Location
	snapshotInterval time.Duration
	retention        time.Duration
}

func New(
	aggregator Aggregation,
	store SnapshotStore,
	sweepers []Sweeper,
	locations []weather.Location,
	snapshotInterval time.Duration,
	retention time.Duration,
) *Scheduler {
	return &Scheduler{
		scheduler:        gocron.NewScheduler(time.UTC),
		aggregator:       aggregator,
		store:            store,
		sweepers:         sweepers,
		locations:        locations,
		snapshotInterval: snapshotInterval,
		retention:        retention,
	}
}

// Start registers the jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.sweepers) > 0 {
		if _, err := s.scheduler.Every(sweepInterval).Do(s.SweepCaches); err != nil {
			return err
		}
	}

	if s.store != nil && s.aggregator != nil && len(s.locations) > 0 {
		minutes := int(s.snapshotInterval.Minutes())
		if minutes <= 0 {
			minutes = 15
		}
		if _, err := s.scheduler.Every(minutes).Minutes().Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			s.CaptureSnapshots(ctx)
		}); err != nil {
			return err
		}
	}

	if s.store != nil && s.retention > 0 {
		if _, err := s.scheduler.Every(1).Day().At("00:30").Do(s.PruneHistory); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// CaptureSnapshots fetches current conditions for every tracked location and
// persists one row per provider result that carries data. Cached results are
// persisted too; the capture interval should exceed the cache TTL if every
// row must be a fresh reading.
func (s *Scheduler) CaptureSnapshots(ctx context.Context) {
	log.Debug().Int("locations", len(s.locations)).Msg("snapshot capture started")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		loc := loc
		wg.Add(1)
		go func() {
			defer wg.Done()

			response, _ := s.aggregator.Current(ctx, loc)
			for _, result := range response.Providers {
				if result.Data == nil {
					continue
				}

				snapshot := &history.Snapshot{
					LocationID:    loc.ID,
					LocationName:  loc.Name,
					Latitude:      loc.Latitude,
					Longitude:     loc.Longitude,
					Provider:      string(result.Provider),
					Temperature:   result.Data.Temperature,
					Humidity:      result.Data.Humidity,
					Pressure:      result.Data.Pressure,
					WindSpeed:     result.Data.WindSpeed,
					Precipitation: result.Data.Precipitation,
					CloudCover:    result.Data.CloudCover,
				}
				if err := s.store.SaveSnapshot(snapshot); err != nil {
					log.Error().Err(err).
						Str("location", loc.Name).
						Str("provider", string(result.Provider)).
						Msg("snapshot save failed")
				}
			}
		}()
	}
	wg.Wait()

	log.Debug().Msg("snapshot capture completed")
}

// SweepCaches clears expired entries from every registered cache.
func (s *Scheduler) SweepCaches() {
	for _, sweeper := range s.sweepers {
		sweeper.ClearExpired()
	}
}

// PruneHistory deletes snapshots older than the retention window.
func (s *Scheduler) PruneHistory() {
	cutoff := time.Now().UTC().Add(-s.retention)
	deleted, err := s.store.DeleteOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Time("cutoff", cutoff).Msg("history prune failed")
		return
	}
	log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("history prune completed")
}

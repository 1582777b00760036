package scheduler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"weatherdash/weather-dashboard/internal/db/history"
	"weatherdash/weather-dashboard/internal/mocks"
	"weatherdash/weather-dashboard/internal/scheduler"
	"weatherdash/weather-dashboard/internal/ttlcache"
	"weatherdash/weather-dashboard/internal/weather"
)

type SchedulerTestSuite struct {
	suite.Suite
	mockAggregator *mocks.MockAggregation
	mockStore      *mocks.MockSnapshotStore
}

func (s *SchedulerTestSuite) SetupTest() {
	s.mockAggregator = mocks.NewMockAggregation(s.T())
	s.mockStore = mocks.NewMockSnapshotStore(s.T())
}

func (s *SchedulerTestSuite) newScheduler(locations []weather.Location, sweepers []scheduler.Sweeper) *scheduler.Scheduler {
	return scheduler.New(s.mockAggregator, s.mockStore, sweepers, locations, 15*time.Minute, 30*24*time.Hour)
}

func (s *SchedulerTestSuite) TestCaptureSnapshotsPersistsEachProviderResult() {
	berlin := weather.Location{ID: "2950159", Name: "Berlin", Latitude: 52.52, Longitude: 13.405}
	conditions := weather.CurrentConditions{Temperature: 14.2, Humidity: 71, Pressure: 1012, WindSpeed: 4.1, CloudCover: 40}

	s.mockAggregator.On("Current", mock.Anything, berlin).Return(weather.CurrentResponse{
		Location: berlin,
		Providers: []weather.ProviderResult[weather.CurrentConditions]{
			{Provider: weather.ProviderOpenWeatherMap, Data: &conditions},
			{Provider: weather.ProviderOpenMeteo, Data: &conditions},
		},
	}, http.StatusOK)

	s.mockStore.On("SaveSnapshot", mock.MatchedBy(func(snapshot *history.Snapshot) bool {
		return snapshot.LocationID == "2950159" && snapshot.Temperature == 14.2
	})).Return(nil).Twice()

	sched := s.newScheduler([]weather.Location{berlin}, nil)
	sched.CaptureSnapshots(context.Background())

	s.mockStore.AssertNumberOfCalls(s.T(), "SaveSnapshot", 2)
}

func (s *SchedulerTestSuite) TestCaptureSnapshotsSkipsFailedProviders() {
	berlin := weather.Location{ID: "2950159", Name: "Berlin", Latitude: 52.52, Longitude: 13.405}
	conditions := weather.CurrentConditions{Temperature: 14.2}

	s.mockAggregator.On("Current", mock.Anything, berlin).Return(weather.CurrentResponse{
		Location: berlin,
		Providers: []weather.ProviderResult[weather.CurrentConditions]{
			{Provider: weather.ProviderOpenWeatherMap, Error: "request failed with status 401"},
			{Provider: weather.ProviderOpenMeteo, Data: &conditions},
		},
	}, http.StatusBadGateway)

	s.mockStore.On("SaveSnapshot", mock.MatchedBy(func(snapshot *history.Snapshot) bool {
		return snapshot.Provider == string(weather.ProviderOpenMeteo)
	})).Return(nil).Once()

	sched := s.newScheduler([]weather.Location{berlin}, nil)
	sched.CaptureSnapshots(context.Background())

	s.mockStore.AssertNumberOfCalls(s.T(), "SaveSnapshot", 1)
}

func (s *SchedulerTestSuite) TestCaptureSnapshotsContinuesAfterSaveFailure() {
	berlin := weather.Location{ID: "2950159", Name: "Berlin", Latitude: 52.52, Longitude: 13.405}
	paris := weather.Location{ID: "2988507", Name: "Paris", Latitude: 48.857, Longitude: 2.351}
	conditions := weather.CurrentConditions{Temperature: 14.2}

	response := func(loc weather.Location) weather.CurrentResponse {
		return weather.CurrentResponse{
			Location: loc,
			Providers: []weather.ProviderResult[weather.CurrentConditions]{
				{Provider: weather.ProviderOpenMeteo, Data: &conditions},
			},
		}
	}
	s.mockAggregator.On("Current", mock.Anything, berlin).Return(response(berlin), http.StatusOK)
	s.mockAggregator.On("Current", mock.Anything, paris).Return(response(paris), http.StatusOK)

	s.mockStore.On("SaveSnapshot", mock.MatchedBy(func(snapshot *history.Snapshot) bool {
		return snapshot.LocationID == berlin.ID
	})).Return(errors.New("database error"))
	s.mockStore.On("SaveSnapshot", mock.MatchedBy(func(snapshot *history.Snapshot) bool {
		return snapshot.LocationID == paris.ID
	})).Return(nil)

	sched := s.newScheduler([]weather.Location{berlin, paris}, nil)
	sched.CaptureSnapshots(context.Background())

	s.mockStore.AssertNumberOfCalls(s.T(), "SaveSnapshot", 2)
}

func (s *SchedulerTestSuite) TestSweepCachesDropsExpiredEntries() {
	cache := ttlcache.New[weather.CurrentConditions](20 * time.Millisecond)
	cache.Set("current:OpenMeteo:52.520:13.405", weather.CurrentConditions{Temperature: 14.2})
	cache.SetWithTTL("current:OpenMeteo:48.857:2.351", weather.CurrentConditions{Temperature: 18.0}, time.Minute)

	time.Sleep(50 * time.Millisecond)

	sched := s.newScheduler(nil, []scheduler.Sweeper{cache})
	sched.SweepCaches()

	s.Equal(1, cache.Len())
}

func (s *SchedulerTestSuite) TestPruneHistoryUsesRetentionCutoff() {
	s.mockStore.On("DeleteOlderThan", mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-30 * 24 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(int64(12), nil)

	sched := s.newScheduler(nil, nil)
	sched.PruneHistory()
}

func (s *SchedulerTestSuite) TestPruneHistorySurvivesStoreFailure() {
	s.mockStore.On("DeleteOlderThan", mock.Anything).Return(int64(0), errors.New("connection error"))

	sched := s.newScheduler(nil, nil)
	sched.PruneHistory()
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}

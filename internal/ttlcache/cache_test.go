package ttlcache_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"weatherdash/weather-dashboard/internal/ttlcache"
)

type TTLCacheTestSuite struct {
	suite.Suite
	cache *ttlcache.Cache[string]
}

func (s *TTLCacheTestSuite) SetupTest() {
	s.cache = ttlcache.New[string](5 * time.Minute)
}

func (s *TTLCacheTestSuite) TestGetNonExistentKey() {
	value, ok := s.cache.Get("nonexistent")

	s.False(ok)
	s.Empty(value)
}

func (s *TTLCacheTestSuite) TestSetAndGet() {
	s.cache.Set("berlin", "cloudy")

	value, ok := s.cache.Get("berlin")
	s.True(ok)
	s.Equal("cloudy", value)
}

func (s *TTLCacheTestSuite) TestExpiration() {
	s.cache.SetWithTTL("berlin", "cloudy", 50*time.Millisecond)

	value, ok := s.cache.Get("berlin")
	s.True(ok)
	s.Equal("cloudy", value)

	time.Sleep(75 * time.Millisecond)

	value, ok = s.cache.Get("berlin")
	s.False(ok)
	s.Empty(value)
}

func (s *TTLCacheTestSuite) TestOverwrite() {
	s.cache.Set("paris", "rainy")
	s.cache.Set("paris", "sunny")

	value, ok := s.cache.Get("paris")
	s.True(ok)
	s.Equal("sunny", value)
}

func (s *TTLCacheTestSuite) TestDelete() {
	s.cache.Set("rome", "clear")
	s.cache.Delete("rome")

	_, ok := s.cache.Get("rome")
	s.False(ok)
}

func (s *TTLCacheTestSuite) TestClear() {
	s.cache.Set("rome", "clear")
	s.cache.Set("oslo", "snow")

	s.cache.Clear()

	s.Equal(0, s.cache.Len())
}

func (s *TTLCacheTestSuite) TestClearExpiredSweepsOnlyExpiredEntries() {
	s.cache.SetWithTTL("stale", "old", 10*time.Millisecond)
	s.cache.Set("fresh", "new")

	time.Sleep(25 * time.Millisecond)
	s.cache.ClearExpired()

	s.Equal(1, s.cache.Len())

	value, ok := s.cache.Get("fresh")
	s.True(ok)
	s.Equal("new", value)
}

func (s *TTLCacheTestSuite) TestConcurrentAccess() {
	iterations := 100
	done := make(chan struct{})

	s.cache.Set("madrid", "hot")

	for i := 0; i < iterations; i++ {
		go func(i int) {
			s.cache.Set(fmt.Sprintf("key-%d", i), "value")
			_, _ = s.cache.Get("madrid")
			done <- struct{}{}
		}(i)
	}

	for i := 0; i < iterations; i++ {
		<-done
	}

	value, ok := s.cache.Get("madrid")
	s.True(ok)
	s.Equal("hot", value)
}

func (s *TTLCacheTestSuite) TestBuildKeyRoundsCoordinates() {
	key := ttlcache.BuildKey("current", "OpenMeteo", 52.52001, 13.40499)

	s.Equal("current:OpenMeteo:52.520:13.405", key)
	s.Equal(key, ttlcache.BuildKey("current", "OpenMeteo", 52.5200004, 13.4049996))
}

func TestTTLCacheTestSuite(t *testing.T) {
	suite.Run(t, new(TTLCacheTestSuite))
}

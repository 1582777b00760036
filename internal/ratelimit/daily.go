package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrLimitReached is returned by Consume once a provider's daily quota is
// exhausted. Callers are expected to probe CanConsume first.
var ErrLimitReached = errors.New("rate limit reached")

type counter struct {
	date  string
	count int
}

// DailyLimiter caps outbound calls per key (provider) per UTC calendar day.
// The counter rolls over lazily: any access under a new date resets it, so no
// background timer is needed.
type DailyLimiter struct {
	mu       sync.Mutex
	limit    int
	counters map[string]*counter
	now      func() time.Time
}

func NewDailyLimiter(limit int) *DailyLimiter {
	return &DailyLimiter{
		limit:    limit,
		counters: make(map[string]*counter),
		now:      time.Now,
	}
}

// NewDailyLimiterWithClock allows tests to control the current day.
func NewDailyLimiterWithClock(limit int, now func() time.Time) *DailyLimiter {
	l := NewDailyLimiter(limit)
	l.now = now
	return l
}

func (l *DailyLimiter) today() string {
	return l.now().UTC().Format("2006-01-02")
}

// entryLocked returns the counter for key, resetting it if the stored date is
// not today. Callers must hold l.mu.
func (l *DailyLimiter) entryLocked(key string) *counter {
	today := l.today()
	c, ok := l.counters[key]
	if !ok || c.date != today {
		c = &counter{date: today}
		l.counters[key] = c
	}
	return c
}

// CanConsume reports whether key still has quota left today.
func (l *DailyLimiter) CanConsume(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.entryLocked(key).count < l.limit
}

// Consume takes one unit of quota, failing with ErrLimitReached when the
// daily limit is already spent.
func (l *DailyLimiter) Consume(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c := l.entryLocked(key)
	if c.count >= l.limit {
		return ErrLimitReached
	}
	c.count++
	return nil
}

// Remaining returns the unused quota for key today, floored at zero.
func (l *DailyLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.limit - l.entryLocked(key).count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset clears every counter. Intended for tests and administrative resets.
func (l *DailyLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.counters = make(map[string]*counter)
}

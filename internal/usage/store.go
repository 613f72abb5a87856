// Package usage tracks per-user daily query consumption.
//
// The store owns every usage record; callers never hold one across calls.
// All day arithmetic uses a single clock and time zone fixed at construction,
// so Remaining and TryConsume can never disagree about what "today" is.
package usage

import (
	"sync"
	"time"
)

// Decision is the outcome of one atomic check-and-increment.
// Remaining counts are always post-consumption: after an allowed request
// RemainingAfter already excludes that request, and a denial reports 0.
type Decision struct {
	Allowed         bool
	RemainingBefore int
	RemainingAfter  int
}

// record is one user's consumption for one calendar day.
type record struct {
	day   time.Time // midnight in the store's location
	count int
}

// Store is a concurrent map of user id to current-day usage.
//
// A single store-wide mutex makes TryConsume one critical section, which is
// the whole point: two concurrent requests from the same user must never both
// be admitted when one slot remains. Expected load makes the coarse lock a
// non-issue.
type Store struct {
	mu      sync.Mutex
	records map[int64]record

	limit int
	loc   *time.Location
	now   func() time.Time
}

// NewStore creates a usage store with the given daily limit and time zone.
func NewStore(dailyLimit int, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	return &Store{
		records: make(map[int64]record),
		limit:   dailyLimit,
		loc:     loc,
		now:     time.Now,
	}
}

// WithClock overrides the time source. For tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Limit returns the configured daily limit.
func (s *Store) Limit() int { return s.limit }

// Today returns midnight of the current day in the store's zone.
func (s *Store) Today() time.Time {
	return truncateToDay(s.now().In(s.loc))
}

// Remaining returns how many queries the user may still make today.
// Never mutates state.
func (s *Store) Remaining(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingLocked(userID, s.todayLocked())
}

// Used returns how many queries the user has made today.
func (s *Store) Used(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok || !rec.day.Equal(s.todayLocked()) {
		return 0
	}
	if rec.count > s.limit {
		return s.limit
	}
	return rec.count
}

// TryConsume atomically checks the user's quota and, if a slot is free,
// charges one query to today's record. A stale record (previous day) counts
// as absent and is replaced. Denials never mutate state.
func (s *Store) TryConsume(userID int64) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.todayLocked()
	before := s.remainingLocked(userID, today)
	if before <= 0 {
		return Decision{Allowed: false, RemainingBefore: 0, RemainingAfter: 0}
	}

	rec, ok := s.records[userID]
	if !ok || !rec.day.Equal(today) {
		rec = record{day: today}
	}
	rec.count++
	s.records[userID] = rec

	return Decision{
		Allowed:         true,
		RemainingBefore: before,
		RemainingAfter:  before - 1,
	}
}

// Reset removes the user's record unconditionally. Idempotent.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, userID)
}

// Sweep removes every record whose day is strictly before staleBefore and
// returns the number removed.
func (s *Store) Sweep(staleBefore time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.records {
		if rec.day.Before(staleBefore) {
			delete(s.records, id)
			removed++
		}
	}
	return removed
}

// Size returns the number of records currently held.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) todayLocked() time.Time {
	return truncateToDay(s.now().In(s.loc))
}

func (s *Store) remainingLocked(userID int64, today time.Time) int {
	rec, ok := s.records[userID]
	if !ok || !rec.day.Equal(today) {
		return s.limit
	}
	remaining := s.limit - rec.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package usage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/metrics"
)

// Janitor evicts stale usage records on a daily schedule. Quota enforcement
// re-derives staleness on every access, so a missed sweep only delays memory
// reclamation, never changes a decision.
type Janitor struct {
	store  *Store
	hour   int // local hour of day to sweep at
	logger *zap.Logger
	now    func() time.Time
}

// NewJanitor creates a janitor sweeping the store daily at the given hour
// in the store's time zone.
func NewJanitor(store *Store, hour int, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:  store,
		hour:   hour,
		logger: logger,
		now:    store.now,
	}
}

// Run blocks, sweeping at each scheduled time until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	for {
		timer := time.NewTimer(time.Until(j.nextRun()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		j.SweepNow()
	}
}

// SweepNow performs one sweep immediately: records older than yesterday go.
func (j *Janitor) SweepNow() {
	staleBefore := j.store.Today().AddDate(0, 0, -1)
	removed := j.store.Sweep(staleBefore)

	metrics.SweepRemovedTotal.Add(float64(removed))
	metrics.UsageRecords.Set(float64(j.store.Size()))

	if removed > 0 {
		j.logger.Info("Swept stale usage records",
			zap.Int("removed", removed),
			zap.Int("remaining_records", j.store.Size()),
			zap.Time("stale_before", staleBefore),
		)
	}
}

// nextRun returns the next occurrence of the sweep hour.
func (j *Janitor) nextRun() time.Time {
	now := j.now().In(j.store.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, 0, 0, 0, j.store.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Package quota translates usage counters into allow/deny decisions.
package quota

import "github.com/chikere/verseguide/internal/usage"

// Store is the consumer interface for usage accounting (ISP).
type Store interface {
	Remaining(userID int64) int
	Used(userID int64) int
	TryConsume(userID int64) usage.Decision
	Reset(userID int64)
	Limit() int
}

// Policy is a stateless decision layer over the usage store. It guarantees
// the remaining count handed to callers is consistent with the decision:
// never negative, never positive on a denial.
type Policy struct {
	store Store
}

// New creates a quota policy over the given store.
func New(store Store) *Policy {
	return &Policy{store: store}
}

// Limit returns the configured daily limit.
func (p *Policy) Limit() int { return p.store.Limit() }

// Check atomically charges one query if the user has quota left.
func (p *Policy) Check(userID int64) usage.Decision {
	d := p.store.TryConsume(userID)
	if !d.Allowed {
		d.RemainingAfter = 0
	}
	if d.RemainingAfter < 0 {
		d.RemainingAfter = 0
	}
	return d
}

// Status reports today's used and remaining counts without consuming quota.
func (p *Policy) Status(userID int64) (used, remaining int) {
	return p.store.Used(userID), p.store.Remaining(userID)
}

// Reset clears the user's usage record. Idempotent.
func (p *Policy) Reset(userID int64) {
	p.store.Reset(userID)
}

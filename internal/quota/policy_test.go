package quota

import (
	"testing"
	"time"

	"github.com/chikere/verseguide/internal/usage"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	limit        int
	remainingFn  func(userID int64) int
	usedFn       func(userID int64) int
	tryConsumeFn func(userID int64) usage.Decision
	resetCalls   []int64
}

func (m *mockStore) Remaining(userID int64) int {
	if m.remainingFn != nil {
		return m.remainingFn(userID)
	}
	return m.limit
}

func (m *mockStore) Used(userID int64) int {
	if m.usedFn != nil {
		return m.usedFn(userID)
	}
	return 0
}

func (m *mockStore) TryConsume(userID int64) usage.Decision {
	if m.tryConsumeFn != nil {
		return m.tryConsumeFn(userID)
	}
	return usage.Decision{Allowed: true, RemainingBefore: m.limit, RemainingAfter: m.limit - 1}
}

func (m *mockStore) Reset(userID int64) {
	m.resetCalls = append(m.resetCalls, userID)
}

func (m *mockStore) Limit() int { return m.limit }

func TestCheck_DenialReportsZeroRemaining(t *testing.T) {
	p := New(&mockStore{
		limit: 5,
		tryConsumeFn: func(int64) usage.Decision {
			// A buggy store reporting leftover quota on a denial must be clamped.
			return usage.Decision{Allowed: false, RemainingBefore: 0, RemainingAfter: 2}
		},
	})

	d := p.Check(1)
	if d.Allowed {
		t.Fatal("expected denial")
	}
	if d.RemainingAfter != 0 {
		t.Errorf("denied decision reports RemainingAfter = %d, want 0", d.RemainingAfter)
	}
}

func TestCheck_NeverReportsNegativeRemaining(t *testing.T) {
	p := New(&mockStore{
		limit: 5,
		tryConsumeFn: func(int64) usage.Decision {
			return usage.Decision{Allowed: true, RemainingBefore: 0, RemainingAfter: -1}
		},
	})

	if d := p.Check(1); d.RemainingAfter != 0 {
		t.Errorf("RemainingAfter = %d, want clamped 0", d.RemainingAfter)
	}
}

func TestStatus_DoesNotConsume(t *testing.T) {
	consumed := 0
	p := New(&mockStore{
		limit:  5,
		usedFn: func(int64) int { return 2 },
		remainingFn: func(int64) int { return 3 },
		tryConsumeFn: func(int64) usage.Decision {
			consumed++
			return usage.Decision{}
		},
	})

	used, remaining := p.Status(1)
	if used != 2 || remaining != 3 {
		t.Errorf("Status = (%d, %d), want (2, 3)", used, remaining)
	}
	if consumed != 0 {
		t.Errorf("Status must not call TryConsume, got %d calls", consumed)
	}
}

func TestReset_Delegates(t *testing.T) {
	m := &mockStore{limit: 5}
	p := New(m)

	p.Reset(7)
	p.Reset(7)

	if len(m.resetCalls) != 2 || m.resetCalls[0] != 7 {
		t.Errorf("reset calls = %v, want [7 7]", m.resetCalls)
	}
}

// TestPolicyWithRealStore exercises the policy over the actual usage store.
func TestPolicyWithRealStore(t *testing.T) {
	loc := time.UTC
	clock := func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, loc) }
	p := New(usage.NewStore(2, loc).WithClock(clock))

	if p.Limit() != 2 {
		t.Fatalf("Limit = %d, want 2", p.Limit())
	}

	if d := p.Check(1); !d.Allowed || d.RemainingAfter != 1 {
		t.Fatalf("first check: %+v", d)
	}
	if d := p.Check(1); !d.Allowed || d.RemainingAfter != 0 {
		t.Fatalf("second check: %+v", d)
	}
	if d := p.Check(1); d.Allowed || d.RemainingAfter != 0 {
		t.Fatalf("third check should deny with 0 remaining: %+v", d)
	}

	used, remaining := p.Status(1)
	if used != 2 || remaining != 0 {
		t.Errorf("Status = (%d, %d), want (2, 0)", used, remaining)
	}
}

package bot

import (
	"context"
	"errors"

	"github.com/chikere/verseguide/internal/usage"
)

// ErrNoResult reports that the backend answered but had no verse for the
// query. Distinct from a transport failure so the reply can suggest other
// keywords instead of apologizing.
var ErrNoResult = errors.New("bot: no verse found")

// Backend is the verse-lookup boundary: one call per allowed query.
type Backend interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// QuotaPolicy is the consumer interface for quota decisions (ISP).
type QuotaPolicy interface {
	Limit() int
	Check(userID int64) usage.Decision
	Status(userID int64) (used, remaining int)
	Reset(userID int64)
}

// Package bot routes inbound chat messages: built-in commands are answered
// directly, free-text queries pass the quota gate and go to the verse backend.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/metrics"
)

// Dispatcher turns one inbound message into exactly one reply. It keeps no
// state of its own between messages; everything durable lives in the quota
// policy's store.
type Dispatcher struct {
	quota          QuotaPolicy
	backend        Backend
	maxQueryLength int
	backendTimeout time.Duration
	logger         *zap.Logger
}

// Config holds the dispatcher settings.
type Config struct {
	Quota          QuotaPolicy
	Backend        Backend
	MaxQueryLength int           // runes; longer queries are rejected locally
	BackendTimeout time.Duration // per verse lookup
	Logger         *zap.Logger
}

// NewDispatcher creates a message dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	return &Dispatcher{
		quota:          cfg.Quota,
		backend:        cfg.Backend,
		maxQueryLength: cfg.MaxQueryLength,
		backendTimeout: cfg.BackendTimeout,
		logger:         cfg.Logger,
	}
}

// Handle processes one inbound message and returns the reply text.
// It never panics out: any unexpected failure becomes a generic apology, so
// a single bad message cannot take the process down.
func (d *Dispatcher) Handle(ctx context.Context, userID int64, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic while handling message",
				zap.Int64("user_id", userID),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)
			metrics.MessagesTotal.WithLabelValues("error").Inc()
			reply = unexpectedErrorMessage
		}
	}()

	trimmed := strings.TrimSpace(text)

	switch strings.ToLower(trimmed) {
	case "/start", "/help":
		metrics.MessagesTotal.WithLabelValues("command").Inc()
		return welcomeMessage(d.quota.Limit())
	case "/status":
		metrics.MessagesTotal.WithLabelValues("command").Inc()
		used, remaining := d.quota.Status(userID)
		return statusMessage(used, remaining, d.quota.Limit())
	case "/reset":
		metrics.MessagesTotal.WithLabelValues("command").Inc()
		d.quota.Reset(userID)
		d.logger.Info("User reset their daily limit", zap.Int64("user_id", userID))
		return resetMessage
	default:
		return d.handleQuery(ctx, userID, trimmed)
	}
}

func (d *Dispatcher) handleQuery(ctx context.Context, userID int64, query string) string {
	if query == "" {
		metrics.MessagesTotal.WithLabelValues("invalid").Inc()
		return emptyQueryMessage
	}
	if utf8.RuneCountInString(query) > d.maxQueryLength {
		metrics.MessagesTotal.WithLabelValues("invalid").Inc()
		return tooLongMessage(d.maxQueryLength)
	}

	dec := d.quota.Check(userID)
	if !dec.Allowed {
		metrics.MessagesTotal.WithLabelValues("denied").Inc()
		d.logger.Info("Quota exceeded",
			zap.Int64("user_id", userID),
			zap.Int("limit", d.quota.Limit()),
		)
		return quotaExceededMessage(d.quota.Limit())
	}
	metrics.MessagesTotal.WithLabelValues("allowed").Inc()

	// Quota is charged before the lookup and never refunded: a failed
	// backend call still counts against the user's day.
	reply := d.lookup(ctx, userID, query)
	return reply + remainingFooter(dec.RemainingAfter, d.quota.Limit())
}

func (d *Dispatcher) lookup(ctx context.Context, userID int64, query string) string {
	ctx, cancel := context.WithTimeout(ctx, d.backendTimeout)
	defer cancel()

	resp, err := d.backend.Lookup(ctx, query)
	switch {
	case errors.Is(err, ErrNoResult):
		return noVerseMessage
	case err != nil:
		d.logger.Error("Verse backend call failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return backendFailedMessage
	case strings.TrimSpace(resp) == "":
		return noVerseMessage
	default:
		return resp
	}
}

// Package versecache caches verse replies in a key-value store so repeated
// queries skip the generation provider.
package versecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/db"
)

const cacheKeyPrefix = "verseguide:verse_cache:"

// store is the consumer interface for the reply cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Source is the verse lookup being decorated.
type Source interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// Cache is a caching decorator over a verse lookup.
type Cache struct {
	inner      Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Lookup returns a cached reply or calls the inner lookup. Only successful,
// non-empty replies are cached; misses and errors always reach the source.
func (c *Cache) Lookup(ctx context.Context, query string) (string, error) {
	key := cacheKey(query)

	if reply, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return reply, nil
	}
	c.incCache("miss")

	reply, err := c.inner.Lookup(ctx, query)
	if err != nil {
		return "", fmt.Errorf("lookup verse: %w", err)
	}

	if reply != "" {
		c.putToCache(ctx, key, reply)
	}
	return reply, nil
}

func (c *Cache) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Verse cache read failed", zap.Error(err))
		}
		return "", false
	}
	return string(data), true
}

// putToCache is best effort: a failed write only costs a future generation.
func (c *Cache) putToCache(ctx context.Context, key, reply string) {
	if err := c.store.SetWithTTL(ctx, key, []byte(reply), c.ttl); err != nil {
		c.logger.Warn("Verse cache write failed", zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func cacheKey(query string) string {
	h := sha256.Sum256([]byte(query))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

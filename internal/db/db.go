// Package db abstracts the key-value store behind the verse reply cache.
package db

import (
	"context"
	"time"
)

// KVStore provides the key-value operations the cache needs.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// Package cache defines the port interface for short-lived key-value storage.
package cache

import (
	"context"
	"time"
)

// Cache is the port interface for TTL'd key-value storage. It backs the
// import flash slot and the consumed-token ledger.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

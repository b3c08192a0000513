// Package cache stores short-lived strings such as generated executive summaries.
package cache

import (
	"context"
	"time"
)

// Store is a TTL key-value store. A miss is reported with ok=false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

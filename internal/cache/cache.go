package cache

import (
	"context"
	"time"
)

// Cache stores short-lived string values keyed by string.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

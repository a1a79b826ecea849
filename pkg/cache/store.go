package cache

import (
	"context"
	"time"
)

// Store is the byte-oriented cache used by read-through repositories.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const keyPrefix = "campus_voice:"

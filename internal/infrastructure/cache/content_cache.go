package cache

import (
	"context"
	"time"
)

// ContentCache stores generated daily content keyed by calendar day.
// Keys are of the form "quotes:2026-08-30" or
// "reflection:2026-08-30:stressed"; values are the serialized payload.
type ContentCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

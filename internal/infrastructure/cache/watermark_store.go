package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WatermarkStore records, per user and device, the last instant at
// which a quest's chat was read. Watermarks only move forward and are
// never merged across devices: each device tracks its own read state.
type WatermarkStore interface {
	Get(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) (time.Time, error)
	Advance(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID, readAt time.Time) error
	Clear(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) error
}

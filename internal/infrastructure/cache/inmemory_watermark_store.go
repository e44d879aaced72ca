package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type watermarkKey struct {
	userID   uuid.UUID
	deviceID string
	questID  uuid.UUID
}

// InMemoryWatermarkStore implements WatermarkStore using an in-memory
// map. Suitable for single-instance deployments and testing.
type InMemoryWatermarkStore struct {
	mu         sync.RWMutex
	watermarks map[watermarkKey]time.Time
}

// NewInMemoryWatermarkStore creates a new in-memory watermark store
func NewInMemoryWatermarkStore() *InMemoryWatermarkStore {
	return &InMemoryWatermarkStore{
		watermarks: make(map[watermarkKey]time.Time),
	}
}

// Get returns the watermark for a quest, or the zero time when the
// device has never read that chat
func (s *InMemoryWatermarkStore) Get(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watermarks[watermarkKey{userID, deviceID, questID}], nil
}

// Advance moves the watermark forward. A readAt at or before the
// current watermark is a no-op.
func (s *InMemoryWatermarkStore) Advance(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID, readAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := watermarkKey{userID, deviceID, questID}
	if !readAt.After(s.watermarks[key]) {
		return nil
	}
	s.watermarks[key] = readAt
	return nil
}

// Clear removes the watermark for a quest
func (s *InMemoryWatermarkStore) Clear(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watermarks, watermarkKey{userID, deviceID, questID})
	return nil
}

var _ WatermarkStore = (*InMemoryWatermarkStore)(nil)

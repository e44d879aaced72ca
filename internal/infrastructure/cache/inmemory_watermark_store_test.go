package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryWatermarkStore(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	questID := uuid.New()

	t.Run("zero time before first read", func(t *testing.T) {
		s := NewInMemoryWatermarkStore()

		readAt, err := s.Get(ctx, userID, "device-1", questID)
		require.NoError(t, err)
		assert.True(t, readAt.IsZero())
	})

	t.Run("advance moves forward only", func(t *testing.T) {
		s := NewInMemoryWatermarkStore()
		later := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		earlier := later.Add(-time.Minute)

		require.NoError(t, s.Advance(ctx, userID, "device-1", questID, later))
		require.NoError(t, s.Advance(ctx, userID, "device-1", questID, earlier))

		readAt, err := s.Get(ctx, userID, "device-1", questID)
		require.NoError(t, err)
		assert.True(t, readAt.Equal(later))
	})

	t.Run("devices track read state independently", func(t *testing.T) {
		s := NewInMemoryWatermarkStore()
		readAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

		require.NoError(t, s.Advance(ctx, userID, "phone", questID, readAt))

		other, err := s.Get(ctx, userID, "laptop", questID)
		require.NoError(t, err)
		assert.True(t, other.IsZero())
	})

	t.Run("clear removes the watermark", func(t *testing.T) {
		s := NewInMemoryWatermarkStore()
		require.NoError(t, s.Advance(ctx, userID, "device-1", questID, time.Now()))
		require.NoError(t, s.Clear(ctx, userID, "device-1", questID))

		readAt, err := s.Get(ctx, userID, "device-1", questID)
		require.NoError(t, err)
		assert.True(t, readAt.IsZero())
	})
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisWatermarkStore implements WatermarkStore using one Redis hash
// per (user, device) pair, with quest IDs as fields
type RedisWatermarkStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisWatermarkStore creates a watermark store backed by an
// existing Redis client
func NewRedisWatermarkStore(client *redis.Client, keyPrefix string) *RedisWatermarkStore {
	if keyPrefix == "" {
		keyPrefix = "chat:watermark:"
	}
	return &RedisWatermarkStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *RedisWatermarkStore) key(userID uuid.UUID, deviceID string) string {
	return s.keyPrefix + userID.String() + ":" + deviceID
}

// Get returns the watermark for a quest, or the zero time when the
// device has never read that chat
func (s *RedisWatermarkStore) Get(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) (time.Time, error) {
	value, err := s.client.HGet(ctx, s.key(userID, deviceID), questID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read watermark: %w", err)
	}

	readAt, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse watermark: %w", err)
	}
	return readAt, nil
}

// Advance moves the watermark forward. A readAt at or before the
// current watermark is a no-op.
func (s *RedisWatermarkStore) Advance(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID, readAt time.Time) error {
	current, err := s.Get(ctx, userID, deviceID, questID)
	if err != nil {
		return err
	}
	if !readAt.After(current) {
		return nil
	}

	if err := s.client.HSet(ctx, s.key(userID, deviceID), questID.String(), readAt.UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("failed to advance watermark: %w", err)
	}
	return nil
}

// Clear removes the watermark for a quest, typically after leaving it
func (s *RedisWatermarkStore) Clear(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) error {
	if err := s.client.HDel(ctx, s.key(userID, deviceID), questID.String()).Err(); err != nil {
		return fmt.Errorf("failed to clear watermark: %w", err)
	}
	return nil
}

var _ WatermarkStore = (*RedisWatermarkStore)(nil)

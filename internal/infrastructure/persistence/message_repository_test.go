package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormMessageRepository_FindByQuest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	questID, sender := uuid.New(), uuid.New()

	bodies := []string{"first", "second", "third"}
	base := time.Now().Add(-time.Hour)
	for i, body := range bodies {
		m, err := quest.NewMessage(questID, sender, body)
		require.NoError(t, err)
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, m))
	}

	t.Run("returns history ascending by created_at", func(t *testing.T) {
		messages, err := repo.FindByQuest(ctx, questID)
		require.NoError(t, err)
		require.Len(t, messages, 3)
		for i, body := range bodies {
			assert.Equal(t, body, messages[i].Body)
		}
	})

	t.Run("other quests are not included", func(t *testing.T) {
		messages, err := repo.FindByQuest(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}

func TestGormMessageRepository_CountSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMessageRepository(db)
	ctx := context.Background()

	questID, me, other := uuid.New(), uuid.New(), uuid.New()
	watermark := time.Now().Add(-30 * time.Minute)

	old, err := quest.NewMessage(questID, other, "before watermark")
	require.NoError(t, err)
	old.CreatedAt = watermark.Add(-time.Minute)
	require.NoError(t, repo.Save(ctx, old))

	theirs, err := quest.NewMessage(questID, other, "after watermark")
	require.NoError(t, err)
	theirs.CreatedAt = watermark.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, theirs))

	mine, err := quest.NewMessage(questID, me, "my own message")
	require.NoError(t, err)
	mine.CreatedAt = watermark.Add(2 * time.Minute)
	require.NoError(t, repo.Save(ctx, mine))

	count, err := repo.CountSince(ctx, questID, watermark, me)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormReadReceiptRepository_MarkRead(t *testing.T) {
	db := setupTestDB(t)
	messageRepo := NewGormMessageRepository(db)
	receiptRepo := NewGormReadReceiptRepository(db)
	ctx := context.Background()

	questID, sender, reader := uuid.New(), uuid.New(), uuid.New()
	m, err := quest.NewMessage(questID, sender, "hello")
	require.NoError(t, err)
	require.NoError(t, messageRepo.Save(ctx, m))

	t.Run("mark read is idempotent", func(t *testing.T) {
		r1, err := quest.NewReadReceipt(m.ID, reader, questID)
		require.NoError(t, err)
		require.NoError(t, receiptRepo.MarkRead(ctx, r1))

		r2, err := quest.NewReadReceipt(m.ID, reader, questID)
		require.NoError(t, err)
		require.NoError(t, receiptRepo.MarkRead(ctx, r2))

		receipts, err := receiptRepo.FindByMessage(ctx, m.ID)
		require.NoError(t, err)
		assert.Len(t, receipts, 1)
	})

	t.Run("distinct readers produce distinct receipts", func(t *testing.T) {
		r, err := quest.NewReadReceipt(m.ID, uuid.New(), questID)
		require.NoError(t, err)
		require.NoError(t, receiptRepo.MarkRead(ctx, r))

		receipts, err := receiptRepo.FindByMessage(ctx, m.ID)
		require.NoError(t, err)
		assert.Len(t, receipts, 2)
	})
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&quest.Quest{}, &quest.Participant{}, &quest.Message{}, &quest.ReadReceipt{}, &profile.Profile{})
	require.NoError(t, err)

	return db
}

func newTestQuest(t *testing.T, ownerID uuid.UUID, date, start, end string) *quest.Quest {
	t.Helper()
	q, err := quest.NewQuest(ownerID, "Lunch", quest.CategoryFood, date, start, end, "", "NTU", 1.3483, 103.6831)
	require.NoError(t, err)
	return q
}

func TestGormQuestRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormQuestRepository(db)
	ctx := context.Background()

	t.Run("saves and finds quest by id", func(t *testing.T) {
		q := newTestQuest(t, uuid.New(), "2026-09-01", "12:00", "13:00")
		require.NoError(t, repo.Save(ctx, q))

		found, err := repo.FindByID(ctx, q.ID)
		require.NoError(t, err)
		assert.Equal(t, q.Title, found.Title)
		assert.Equal(t, q.Category, found.Category)
		assert.Equal(t, q.StartTime, found.StartTime)
		assert.InDelta(t, q.Latitude, found.Latitude, 1e-9)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormQuestRepository_FindActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormQuestRepository(db)
	ctx := context.Background()
	owner := uuid.New()

	now := time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)

	overnight := newTestQuest(t, owner, "2026-09-01", "23:00", "01:00")
	expired := newTestQuest(t, owner, "2026-09-01", "12:00", "13:00")
	upcoming := newTestQuest(t, owner, "2026-09-02", "09:00", "10:00")
	require.NoError(t, repo.Save(ctx, overnight))
	require.NoError(t, repo.Save(ctx, expired))
	require.NoError(t, repo.Save(ctx, upcoming))

	t.Run("overnight span active past midnight", func(t *testing.T) {
		active, err := repo.FindActive(ctx, now)
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(active))
		for _, q := range active {
			ids = append(ids, q.ID)
		}
		assert.Contains(t, ids, overnight.ID)
		assert.Contains(t, ids, upcoming.ID)
		assert.NotContains(t, ids, expired.ID)
	})

	t.Run("overnight span excluded after its end", func(t *testing.T) {
		later := time.Date(2026, 9, 2, 1, 30, 0, 0, time.UTC)
		active, err := repo.FindActive(ctx, later)
		require.NoError(t, err)

		for _, q := range active {
			assert.NotEqual(t, overnight.ID, q.ID)
		}
	})
}

func TestGormQuestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	questRepo := NewGormQuestRepository(db)
	participantRepo := NewGormParticipantRepository(db)
	messageRepo := NewGormMessageRepository(db)
	receiptRepo := NewGormReadReceiptRepository(db)
	ctx := context.Background()

	t.Run("cascades to participants, messages and receipts", func(t *testing.T) {
		owner, member := uuid.New(), uuid.New()
		q := newTestQuest(t, owner, "2026-09-01", "12:00", "13:00")
		require.NoError(t, questRepo.Save(ctx, q))

		p, err := quest.NewParticipant(q.ID, member)
		require.NoError(t, err)
		require.NoError(t, participantRepo.Join(ctx, p))

		m, err := quest.NewMessage(q.ID, member, "hello")
		require.NoError(t, err)
		require.NoError(t, messageRepo.Save(ctx, m))

		r, err := quest.NewReadReceipt(m.ID, member, q.ID)
		require.NoError(t, err)
		require.NoError(t, receiptRepo.MarkRead(ctx, r))

		require.NoError(t, questRepo.Delete(ctx, q.ID))

		_, err = questRepo.FindByID(ctx, q.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		participants, err := participantRepo.FindByQuest(ctx, q.ID)
		require.NoError(t, err)
		assert.Empty(t, participants)

		messages, err := messageRepo.FindByQuest(ctx, q.ID)
		require.NoError(t, err)
		assert.Empty(t, messages)

		receipts, err := receiptRepo.FindByQuest(ctx, q.ID)
		require.NoError(t, err)
		assert.Empty(t, receipts)
	})

	t.Run("returns not found for unknown quest", func(t *testing.T) {
		err := questRepo.Delete(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormQuestRepository_FindByOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormQuestRepository(db)
	ctx := context.Background()

	owner, other := uuid.New(), uuid.New()
	require.NoError(t, repo.Save(ctx, newTestQuest(t, owner, "2026-09-01", "12:00", "13:00")))
	require.NoError(t, repo.Save(ctx, newTestQuest(t, owner, "2026-09-02", "12:00", "13:00")))
	require.NoError(t, repo.Save(ctx, newTestQuest(t, other, "2026-09-01", "12:00", "13:00")))

	quests, err := repo.FindByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, quests, 2)
}

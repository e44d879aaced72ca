package quest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuest(t *testing.T) {
	owner := uuid.New()

	t.Run("creates quest with valid fields", func(t *testing.T) {
		q, err := NewQuest(owner, "Lunch", CategoryFood, "2026-09-01", "12:00", "13:00", "", "NTU", 1.3483, 103.6831)
		require.NoError(t, err)
		assert.Equal(t, "Lunch", q.Title)
		assert.Equal(t, CategoryFood, q.Category)
		assert.Equal(t, owner, q.OwnerID)
		assert.Equal(t, "12:00 - 13:00", q.Schedule())
		assert.NotEqual(t, uuid.Nil, q.ID)
		assert.Len(t, q.GetDomainEvents(), 1)
		assert.Equal(t, EventQuestCreated, q.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewQuest(owner, "   ", CategoryFood, "2026-09-01", "12:00", "13:00", "", "NTU", 1.3, 103.6)
		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := NewQuest(owner, "Lunch", Category("party"), "2026-09-01", "12:00", "13:00", "", "NTU", 1.3, 103.6)
		require.Error(t, err)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := NewQuest(owner, "Lunch", CategoryFood, "01/09/2026", "12:00", "13:00", "", "NTU", 1.3, 103.6)
		require.Error(t, err)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, err := NewQuest(owner, "Lunch", CategoryFood, "2026-09-01", "noon", "13:00", "", "NTU", 1.3, 103.6)
		require.Error(t, err)
	})

	t.Run("rejects empty location", func(t *testing.T) {
		_, err := NewQuest(owner, "Lunch", CategoryFood, "2026-09-01", "12:00", "13:00", "", "  ", 1.3, 103.6)
		require.Error(t, err)
	})

	t.Run("rejects out of range coordinates", func(t *testing.T) {
		_, err := NewQuest(owner, "Lunch", CategoryFood, "2026-09-01", "12:00", "13:00", "", "NTU", 91, 103.6)
		require.Error(t, err)
	})
}

func TestQuestIsActive(t *testing.T) {
	owner := uuid.New()

	newQuest := func(t *testing.T, date, start, end string) *Quest {
		t.Helper()
		q, err := NewQuest(owner, "Run", CategoryFitness, date, start, end, "", "Bedok Reservoir", 1.34, 103.93)
		require.NoError(t, err)
		return q
	}

	t.Run("active before end instant", func(t *testing.T) {
		q := newQuest(t, "2026-09-01", "12:00", "13:00")
		now := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
		assert.True(t, q.IsActive(now))
	})

	t.Run("inactive once end instant passed", func(t *testing.T) {
		q := newQuest(t, "2026-09-01", "12:00", "13:00")
		now := time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC)
		assert.False(t, q.IsActive(now))
	})

	t.Run("overnight span is active after midnight", func(t *testing.T) {
		q := newQuest(t, "2026-09-01", "23:00", "01:00")
		now := time.Date(2026, 9, 2, 0, 30, 0, 0, time.UTC)
		assert.True(t, q.IsActive(now))
	})

	t.Run("overnight span expires next day", func(t *testing.T) {
		q := newQuest(t, "2026-09-01", "23:00", "01:00")
		now := time.Date(2026, 9, 2, 1, 30, 0, 0, time.UTC)
		assert.False(t, q.IsActive(now))
	})

	t.Run("end equal to start wraps to next day", func(t *testing.T) {
		q := newQuest(t, "2026-09-01", "10:00", "10:00")
		end := q.EndInstant(time.UTC)
		assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), end)
	})
}

func TestNewMessage(t *testing.T) {
	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewMessage(uuid.New(), uuid.New(), "   ")
		require.Error(t, err)
	})

	t.Run("creates message with body", func(t *testing.T) {
		m, err := NewMessage(uuid.New(), uuid.New(), "see you there")
		require.NoError(t, err)
		assert.Equal(t, "see you there", m.Body)
	})
}

func TestNewParticipant(t *testing.T) {
	t.Run("rejects nil ids", func(t *testing.T) {
		_, err := NewParticipant(uuid.Nil, uuid.New())
		require.Error(t, err)
	})

	t.Run("creates edge", func(t *testing.T) {
		questID, userID := uuid.New(), uuid.New()
		p, err := NewParticipant(questID, userID)
		require.NoError(t, err)
		assert.Equal(t, questID, p.QuestID)
		assert.Equal(t, userID, p.UserID)
	})
}

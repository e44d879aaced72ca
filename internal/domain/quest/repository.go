package quest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Repository defines the persistence contract for quests
type Repository interface {
	shared.Repository[Quest]
	// FindActive returns quests whose end instant is after now,
	// honoring the overnight wraparound rule.
	FindActive(ctx context.Context, now time.Time) ([]Quest, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Quest, error)
}

// ParticipantRepository defines the persistence contract for membership edges
type ParticipantRepository interface {
	// Join inserts the edge if absent; an existing edge is not an error.
	Join(ctx context.Context, p *Participant) error
	// Leave removes the edge; a missing edge is not an error.
	Leave(ctx context.Context, questID, userID uuid.UUID) error
	FindByQuest(ctx context.Context, questID uuid.UUID) ([]Participant, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Participant, error)
	Exists(ctx context.Context, questID, userID uuid.UUID) (bool, error)
	CountByQuest(ctx context.Context, questID uuid.UUID) (int64, error)
}

// MessageRepository defines the persistence contract for chat messages
type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)
	// FindByQuest returns the full history ordered by created_at ascending
	FindByQuest(ctx context.Context, questID uuid.UUID) ([]Message, error)
	CountSince(ctx context.Context, questID uuid.UUID, since time.Time, excludeSender uuid.UUID) (int64, error)
}

// ReadReceiptRepository defines the persistence contract for read receipts
type ReadReceiptRepository interface {
	// MarkRead upserts the receipt; repeated calls leave exactly one row.
	MarkRead(ctx context.Context, r *ReadReceipt) error
	FindByMessage(ctx context.Context, messageID uuid.UUID) ([]ReadReceipt, error)
	FindByQuest(ctx context.Context, questID uuid.UUID) ([]ReadReceipt, error)
}

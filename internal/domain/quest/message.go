package quest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Message is a chat message inside a quest. Messages are immutable
// once created and ordered by creation time ascending.
type Message struct {
	shared.BaseEntity
	QuestID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Body     string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "quest_messages"
}

// NewMessage creates a chat message for the given quest
func NewMessage(questID, senderID uuid.UUID, body string) (*Message, error) {
	if questID == uuid.Nil || senderID == uuid.Nil {
		return nil, shared.NewValidationError("Quest and sender are required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewValidationError("Message body cannot be empty")
	}
	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		QuestID:    questID,
		SenderID:   senderID,
		Body:       body,
	}, nil
}

// ReadReceipt records that a member has seen a message.
// One receipt per (message, reader) pair; writes are idempotent upserts.
type ReadReceipt struct {
	shared.BaseEntity
	MessageID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_message_reader,priority:1"`
	ReaderID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_message_reader,priority:2;index"`
	QuestID   uuid.UUID `gorm:"type:uuid;not null;index"` // denormalized for per-quest feeds
}

// TableName returns the table name for GORM
func (ReadReceipt) TableName() string {
	return "quest_message_reads"
}

// NewReadReceipt creates a read receipt for the given message and reader
func NewReadReceipt(messageID, readerID, questID uuid.UUID) (*ReadReceipt, error) {
	if messageID == uuid.Nil || readerID == uuid.Nil {
		return nil, shared.NewValidationError("Message and reader are required")
	}
	return &ReadReceipt{
		BaseEntity: shared.NewBaseEntity(),
		MessageID:  messageID,
		ReaderID:   readerID,
		QuestID:    questID,
	}, nil
}

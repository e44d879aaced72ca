package quest

import (
	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Event types for the quest context
const (
	EventQuestCreated      = "quest.created"
	EventQuestDeleted      = "quest.deleted"
	EventParticipantJoined = "quest.participant_joined"
	EventParticipantLeft   = "quest.participant_left"
	EventMessageSent       = "quest.message_sent"
	EventMessageRead       = "quest.message_read"
)

// QuestCreatedEvent is raised when a quest is created
type QuestCreatedEvent struct {
	shared.BaseDomainEvent
	OwnerID  uuid.UUID `json:"owner_id"`
	Title    string    `json:"title"`
	Category Category  `json:"category"`
}

// NewQuestCreatedEvent creates a quest created event
func NewQuestCreatedEvent(q *Quest) *QuestCreatedEvent {
	return &QuestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuestCreated, "Quest", q.ID),
		OwnerID:         q.OwnerID,
		Title:           q.Title,
		Category:        q.Category,
	}
}

// QuestDeletedEvent is raised when the owner ends a quest
type QuestDeletedEvent struct {
	shared.BaseDomainEvent
	OwnerID uuid.UUID `json:"owner_id"`
}

// NewQuestDeletedEvent creates a quest deleted event
func NewQuestDeletedEvent(q *Quest) *QuestDeletedEvent {
	return &QuestDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventQuestDeleted, "Quest", q.ID),
		OwnerID:         q.OwnerID,
	}
}

// MembershipChangedEvent is raised when a user joins or leaves a quest
type MembershipChangedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewParticipantJoinedEvent creates a joined event for the quest
func NewParticipantJoinedEvent(questID, userID uuid.UUID) *MembershipChangedEvent {
	return &MembershipChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventParticipantJoined, "Quest", questID),
		UserID:          userID,
	}
}

// NewParticipantLeftEvent creates a left event for the quest
func NewParticipantLeftEvent(questID, userID uuid.UUID) *MembershipChangedEvent {
	return &MembershipChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventParticipantLeft, "Quest", questID),
		UserID:          userID,
	}
}

// MessageSentEvent is raised when a chat message is appended
type MessageSentEvent struct {
	shared.BaseDomainEvent
	MessageID uuid.UUID `json:"message_id"`
	SenderID  uuid.UUID `json:"sender_id"`
}

// NewMessageSentEvent creates a message sent event for the quest
func NewMessageSentEvent(m *Message) *MessageSentEvent {
	return &MessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMessageSent, "Quest", m.QuestID),
		MessageID:       m.ID,
		SenderID:        m.SenderID,
	}
}

// MessageReadEvent is raised when a read receipt is recorded
type MessageReadEvent struct {
	shared.BaseDomainEvent
	MessageID uuid.UUID `json:"message_id"`
	ReaderID  uuid.UUID `json:"reader_id"`
}

// NewMessageReadEvent creates a message read event for the quest
func NewMessageReadEvent(r *ReadReceipt) *MessageReadEvent {
	return &MessageReadEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMessageRead, "Quest", r.QuestID),
		MessageID:       r.MessageID,
		ReaderID:        r.ReaderID,
	}
}

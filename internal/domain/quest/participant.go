package quest

import (
	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Participant is the membership edge between a user and a quest.
// The owner is never stored as a row; participant listings synthesize
// the owner as an implicit, non-removable member.
type Participant struct {
	shared.BaseEntity
	QuestID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_quest_user,priority:1"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_quest_user,priority:2;index"`
}

// TableName returns the table name for GORM
func (Participant) TableName() string {
	return "quest_participants"
}

// NewParticipant creates a membership edge for the given quest and user
func NewParticipant(questID, userID uuid.UUID) (*Participant, error) {
	if questID == uuid.Nil || userID == uuid.Nil {
		return nil, shared.NewValidationError("Quest and user are required")
	}
	return &Participant{
		BaseEntity: shared.NewBaseEntity(),
		QuestID:    questID,
		UserID:     userID,
	}, nil
}

package quest

import (
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
)

// =============================================================================
// Quest DTOs
// =============================================================================

// CreateQuestRequest represents a request to post a new quest
type CreateQuestRequest struct {
	Title     string   `json:"title" binding:"required,min=1,max=200"`
	Category  string   `json:"category" binding:"required,oneof=food study fitness errands others"`
	Date      string   `json:"date" binding:"required"`
	StartTime string   `json:"start_time" binding:"required"`
	EndTime   string   `json:"end_time" binding:"required"`
	Details   string   `json:"details"`
	Location  string   `json:"location" binding:"required,min=1"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// QuestListFilter narrows the active quest listing. The time bounds
// are inclusive HH:MM clocks matching the board filter semantics.
type QuestListFilter struct {
	Categories []string `form:"category"`
	Date       string   `form:"date"`
	StartAfter string   `form:"start_after"`
	EndBefore  string   `form:"end_before"`
}

// Validate checks the filter's clock bounds
func (f QuestListFilter) Validate() error {
	if f.StartAfter != "" {
		if err := quest.ValidateClock(f.StartAfter, "start_after"); err != nil {
			return err
		}
	}
	if f.EndBefore != "" {
		if err := quest.ValidateClock(f.EndBefore, "end_before"); err != nil {
			return err
		}
	}
	return nil
}

// QuestResponse represents a quest in API responses
type QuestResponse struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	OwnerName        string    `json:"owner_name"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Schedule         string    `json:"schedule"`
	Details          string    `json:"details"`
	Location         string    `json:"location"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	ParticipantCount int64     `json:"participant_count"`
	IsOwner          bool      `json:"is_owner"`
	IsMember         bool      `json:"is_member"`
	CreatedAt        time.Time `json:"created_at"`
}

// QuestDetailResponse is a quest plus its participant roster
type QuestDetailResponse struct {
	QuestResponse
	Participants []ParticipantResponse `json:"participants"`
}

// ParticipantResponse represents one member of a quest
type ParticipantResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Gender      *string   `json:"gender,omitempty"`
	IsOwner     bool      `json:"is_owner"`
}

// =============================================================================
// Chat DTOs
// =============================================================================

// SendMessageRequest represents a request to append a chat message
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,min=1"`
}

// MessageResponse represents a chat message in API responses
type MessageResponse struct {
	ID         uuid.UUID   `json:"id"`
	QuestID    uuid.UUID   `json:"quest_id"`
	SenderID   uuid.UUID   `json:"sender_id"`
	SenderName string      `json:"sender_name"`
	Body       string      `json:"body"`
	ReadBy     []uuid.UUID `json:"read_by"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ReadReceiptResponse represents a recorded read receipt
type ReadReceiptResponse struct {
	MessageID uuid.UUID `json:"message_id"`
	ReaderID  uuid.UUID `json:"reader_id"`
	QuestID   uuid.UUID `json:"quest_id"`
	ReadAt    time.Time `json:"read_at"`
}

// UnreadCountResponse reports how many messages arrived since this
// device last read the chat
type UnreadCountResponse struct {
	QuestID uuid.UUID `json:"quest_id"`
	Count   int64     `json:"count"`
}

// =============================================================================
// Mapping helpers
// =============================================================================

// ToQuestResponse builds a quest response for a given viewer
func ToQuestResponse(q *quest.Quest, ownerName string, participantCount int64, viewerID uuid.UUID, isMember bool) QuestResponse {
	return QuestResponse{
		ID:               q.ID,
		OwnerID:          q.OwnerID,
		OwnerName:        ownerName,
		Title:            q.Title,
		Category:         string(q.Category),
		Date:             q.Date.Format("2006-01-02"),
		StartTime:        q.StartTime,
		EndTime:          q.EndTime,
		Schedule:         q.Schedule(),
		Details:          q.Details,
		Location:         q.Location,
		Latitude:         q.Latitude,
		Longitude:        q.Longitude,
		ParticipantCount: participantCount,
		IsOwner:          q.IsOwnedBy(viewerID),
		IsMember:         isMember || q.IsOwnedBy(viewerID),
		CreatedAt:        q.CreatedAt,
	}
}

func displayName(profiles map[uuid.UUID]profile.Profile, userID uuid.UUID) string {
	if p, ok := profiles[userID]; ok {
		return p.DisplayName
	}
	return "Unknown adventurer"
}

func genderOf(profiles map[uuid.UUID]profile.Profile, userID uuid.UUID) *string {
	if p, ok := profiles[userID]; ok && p.Gender != nil {
		g := string(*p.Gender)
		return &g
	}
	return nil
}

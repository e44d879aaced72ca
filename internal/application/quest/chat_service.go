package quest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/sidequest/backend/internal/infrastructure/cache"
	"github.com/sidequest/backend/internal/infrastructure/realtime"
)

// ChatService handles per-quest chat: messages, read receipts, and
// unread counts. Every mutation is gated on membership and mirrored
// onto the quest's live feed.
type ChatService struct {
	messageRepo quest.MessageRepository
	receiptRepo quest.ReadReceiptRepository
	profileRepo profile.Repository
	membership  *MembershipService
	feed        *realtime.FeedBus
	watermarks  cache.WatermarkStore
}

// NewChatService creates a new ChatService
func NewChatService(
	messageRepo quest.MessageRepository,
	receiptRepo quest.ReadReceiptRepository,
	profileRepo profile.Repository,
	membership *MembershipService,
	feed *realtime.FeedBus,
	watermarks cache.WatermarkStore,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		receiptRepo: receiptRepo,
		profileRepo: profileRepo,
		membership:  membership,
		feed:        feed,
		watermarks:  watermarks,
	}
}

// SendMessage appends a message to a quest's chat. The sender must be
// a member. The sender's own read receipt is recorded immediately so
// their unread count stays at zero.
func (s *ChatService) SendMessage(ctx context.Context, senderID, questID uuid.UUID, req SendMessageRequest) (*MessageResponse, error) {
	if err := s.requireMember(ctx, senderID, questID); err != nil {
		return nil, err
	}

	m, err := quest.NewMessage(questID, senderID, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	receipt, err := quest.NewReadReceipt(m.ID, senderID, questID)
	if err != nil {
		return nil, err
	}
	if err := s.receiptRepo.MarkRead(ctx, receipt); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, []uuid.UUID{senderID})
	if err != nil {
		return nil, err
	}

	response := MessageResponse{
		ID:         m.ID,
		QuestID:    m.QuestID,
		SenderID:   m.SenderID,
		SenderName: displayName(profiles, senderID),
		Body:       m.Body,
		ReadBy:     []uuid.UUID{senderID},
		CreatedAt:  m.CreatedAt,
	}

	s.feed.Publish(realtime.Event{
		Topic:   realtime.TopicMessages,
		QuestID: questID,
		Payload: response,
	})

	return &response, nil
}

// ListMessages returns a quest's full chat history, oldest first, with
// read receipts attached. The caller must be a member.
func (s *ChatService) ListMessages(ctx context.Context, userID, questID uuid.UUID) ([]MessageResponse, error) {
	if err := s.requireMember(ctx, userID, questID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.FindByQuest(ctx, questID)
	if err != nil {
		return nil, err
	}
	readBy := make(map[uuid.UUID][]uuid.UUID, len(messages))
	for _, r := range receipts {
		readBy[r.MessageID] = append(readBy[r.MessageID], r.ReaderID)
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, senderIDs(messages))
	if err != nil {
		return nil, err
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, MessageResponse{
			ID:         m.ID,
			QuestID:    m.QuestID,
			SenderID:   m.SenderID,
			SenderName: displayName(profiles, m.SenderID),
			Body:       m.Body,
			ReadBy:     readBy[m.ID],
			CreatedAt:  m.CreatedAt,
		})
	}
	return responses, nil
}

// MarkRead records that the caller has seen a message. Repeated calls
// are no-ops; only the first publishes a receipt on the feed.
func (s *ChatService) MarkRead(ctx context.Context, readerID, messageID uuid.UUID) error {
	m, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, readerID, m.QuestID); err != nil {
		return err
	}

	receipt, err := quest.NewReadReceipt(messageID, readerID, m.QuestID)
	if err != nil {
		return err
	}
	if err := s.receiptRepo.MarkRead(ctx, receipt); err != nil {
		return err
	}

	s.feed.Publish(realtime.Event{
		Topic:   realtime.TopicReadReceipts,
		QuestID: m.QuestID,
		Payload: ReadReceiptResponse{
			MessageID: messageID,
			ReaderID:  readerID,
			QuestID:   m.QuestID,
			ReadAt:    receipt.CreatedAt,
		},
	})
	return nil
}

// MarkAllRead records receipts for every message the caller has not
// sent and advances this device's watermark to now. Called when a chat
// is opened.
func (s *ChatService) MarkAllRead(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) error {
	if err := s.requireMember(ctx, userID, questID); err != nil {
		return err
	}

	messages, err := s.messageRepo.FindByQuest(ctx, questID)
	if err != nil {
		return err
	}
	for _, m := range messages {
		if m.SenderID == userID {
			continue
		}
		receipt, err := quest.NewReadReceipt(m.ID, userID, questID)
		if err != nil {
			return err
		}
		if err := s.receiptRepo.MarkRead(ctx, receipt); err != nil {
			return err
		}
		s.feed.Publish(realtime.Event{
			Topic:   realtime.TopicReadReceipts,
			QuestID: questID,
			Payload: ReadReceiptResponse{
				MessageID: m.ID,
				ReaderID:  userID,
				QuestID:   questID,
				ReadAt:    receipt.CreatedAt,
			},
		})
	}

	return s.watermarks.Advance(ctx, userID, deviceID, questID, time.Now())
}

// UnreadCount counts messages from other members that arrived after
// this device last read the chat
func (s *ChatService) UnreadCount(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) (*UnreadCountResponse, error) {
	if err := s.requireMember(ctx, userID, questID); err != nil {
		return nil, err
	}

	watermark, err := s.watermarks.Get(ctx, userID, deviceID, questID)
	if err != nil {
		return nil, err
	}

	count, err := s.messageRepo.CountSince(ctx, questID, watermark, userID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{QuestID: questID, Count: count}, nil
}

func (s *ChatService) requireMember(ctx context.Context, userID, questID uuid.UUID) error {
	isMember, err := s.membership.IsMember(ctx, userID, questID)
	if err != nil {
		return err
	}
	if !isMember {
		return shared.ErrNotMember
	}
	return nil
}

func senderIDs(messages []quest.Message) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(messages))
	ids := make([]uuid.UUID, 0, len(messages))
	for _, m := range messages {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			ids = append(ids, m.SenderID)
		}
	}
	return ids
}

package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockQuestRepository is a mock implementation of quest.Repository
type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Quest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quest.Quest), args.Error(1)
}

func (m *MockQuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quest.Quest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]quest.Quest), args.Error(1)
}

func (m *MockQuestRepository) Save(ctx context.Context, q *quest.Quest) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestRepository) FindActive(ctx context.Context, now time.Time) ([]quest.Quest, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]quest.Quest), args.Error(1)
}

func (m *MockQuestRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]quest.Quest, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]quest.Quest), args.Error(1)
}

// MockParticipantRepository is a mock implementation of quest.ParticipantRepository
type MockParticipantRepository struct {
	mock.Mock
}

func (m *MockParticipantRepository) Join(ctx context.Context, p *quest.Participant) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParticipantRepository) Leave(ctx context.Context, questID, userID uuid.UUID) error {
	args := m.Called(ctx, questID, userID)
	return args.Error(0)
}

func (m *MockParticipantRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Participant, error) {
	args := m.Called(ctx, questID)
	return args.Get(0).([]quest.Participant), args.Error(1)
}

func (m *MockParticipantRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]quest.Participant, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]quest.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Exists(ctx context.Context, questID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, questID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipantRepository) CountByQuest(ctx context.Context, questID uuid.UUID) (int64, error) {
	args := m.Called(ctx, questID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository is a mock implementation of quest.MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Save(ctx context.Context, msg *quest.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quest.Message), args.Error(1)
}

func (m *MockMessageRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Message, error) {
	args := m.Called(ctx, questID)
	return args.Get(0).([]quest.Message), args.Error(1)
}

func (m *MockMessageRepository) CountSince(ctx context.Context, questID uuid.UUID, since time.Time, excludeSender uuid.UUID) (int64, error) {
	args := m.Called(ctx, questID, since, excludeSender)
	return args.Get(0).(int64), args.Error(1)
}

// MockReadReceiptRepository is a mock implementation of quest.ReadReceiptRepository
type MockReadReceiptRepository struct {
	mock.Mock
}

func (m *MockReadReceiptRepository) MarkRead(ctx context.Context, r *quest.ReadReceipt) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReadReceiptRepository) FindByMessage(ctx context.Context, messageID uuid.UUID) ([]quest.ReadReceipt, error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).([]quest.ReadReceipt), args.Error(1)
}

func (m *MockReadReceiptRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.ReadReceipt, error) {
	args := m.Called(ctx, questID)
	return args.Get(0).([]quest.ReadReceipt), args.Error(1)
}

// MockProfileRepository is a mock implementation of profile.Repository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).(map[uuid.UUID]profile.Profile), args.Error(1)
}

// =============================================================================
// Test fixtures
// =============================================================================

func newTestQuest(ownerID uuid.UUID, category quest.Category, lat, lng float64) *quest.Quest {
	q, err := quest.NewQuest(ownerID, "Quest at "+string(category), category,
		"2026-09-01", "12:00", "13:00", "", "Somewhere on campus", lat, lng)
	if err != nil {
		panic(err)
	}
	return q
}

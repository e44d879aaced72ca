package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/sidequest/backend/internal/infrastructure/geocode"
)

// Map-backed repository fakes for handler tests

type fakeQuestRepository struct {
	quests    map[uuid.UUID]*quest.Quest
	returnErr error
}

func newFakeQuestRepository() *fakeQuestRepository {
	return &fakeQuestRepository{quests: make(map[uuid.UUID]*quest.Quest)}
}

func (f *fakeQuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Quest, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	if q, ok := f.quests[id]; ok {
		return q, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeQuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quest.Quest, error) {
	var result []quest.Quest
	for _, q := range f.quests {
		result = append(result, *q)
	}
	return result, nil
}

func (f *fakeQuestRepository) Save(ctx context.Context, q *quest.Quest) error {
	if f.returnErr != nil {
		return f.returnErr
	}
	f.quests[q.ID] = q
	return nil
}

func (f *fakeQuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.quests, id)
	return nil
}

func (f *fakeQuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return int64(len(f.quests)), nil
}

func (f *fakeQuestRepository) FindActive(ctx context.Context, now time.Time) ([]quest.Quest, error) {
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	var result []quest.Quest
	for _, q := range f.quests {
		if q.IsActive(now) {
			result = append(result, *q)
		}
	}
	return result, nil
}

func (f *fakeQuestRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]quest.Quest, error) {
	var result []quest.Quest
	for _, q := range f.quests {
		if q.OwnerID == ownerID {
			result = append(result, *q)
		}
	}
	return result, nil
}

type fakeParticipantRepository struct {
	rows map[uuid.UUID][]quest.Participant // keyed by quest ID
}

func newFakeParticipantRepository() *fakeParticipantRepository {
	return &fakeParticipantRepository{rows: make(map[uuid.UUID][]quest.Participant)}
}

func (f *fakeParticipantRepository) Join(ctx context.Context, p *quest.Participant) error {
	for _, row := range f.rows[p.QuestID] {
		if row.UserID == p.UserID {
			return nil
		}
	}
	f.rows[p.QuestID] = append(f.rows[p.QuestID], *p)
	return nil
}

func (f *fakeParticipantRepository) Leave(ctx context.Context, questID, userID uuid.UUID) error {
	rows := f.rows[questID]
	for i, row := range rows {
		if row.UserID == userID {
			f.rows[questID] = append(rows[:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeParticipantRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Participant, error) {
	return f.rows[questID], nil
}

func (f *fakeParticipantRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]quest.Participant, error) {
	var result []quest.Participant
	for _, rows := range f.rows {
		for _, row := range rows {
			if row.UserID == userID {
				result = append(result, row)
			}
		}
	}
	return result, nil
}

func (f *fakeParticipantRepository) Exists(ctx context.Context, questID, userID uuid.UUID) (bool, error) {
	for _, row := range f.rows[questID] {
		if row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeParticipantRepository) CountByQuest(ctx context.Context, questID uuid.UUID) (int64, error) {
	return int64(len(f.rows[questID])), nil
}

type fakeMessageRepository struct {
	messages map[uuid.UUID]*quest.Message
	order    []uuid.UUID
}

func newFakeMessageRepository() *fakeMessageRepository {
	return &fakeMessageRepository{messages: make(map[uuid.UUID]*quest.Message)}
}

func (f *fakeMessageRepository) Save(ctx context.Context, m *quest.Message) error {
	if _, ok := f.messages[m.ID]; !ok {
		f.order = append(f.order, m.ID)
	}
	f.messages[m.ID] = m
	return nil
}

func (f *fakeMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Message, error) {
	if m, ok := f.messages[id]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeMessageRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Message, error) {
	var result []quest.Message
	for _, id := range f.order {
		if m := f.messages[id]; m.QuestID == questID {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepository) CountSince(ctx context.Context, questID uuid.UUID, since time.Time, excludeSender uuid.UUID) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.QuestID == questID && m.SenderID != excludeSender && m.CreatedAt.After(since) {
			count++
		}
	}
	return count, nil
}

type fakeReadReceiptRepository struct {
	receipts []quest.ReadReceipt
}

func newFakeReadReceiptRepository() *fakeReadReceiptRepository {
	return &fakeReadReceiptRepository{}
}

func (f *fakeReadReceiptRepository) MarkRead(ctx context.Context, r *quest.ReadReceipt) error {
	for _, existing := range f.receipts {
		if existing.MessageID == r.MessageID && existing.ReaderID == r.ReaderID {
			return nil
		}
	}
	f.receipts = append(f.receipts, *r)
	return nil
}

func (f *fakeReadReceiptRepository) FindByMessage(ctx context.Context, messageID uuid.UUID) ([]quest.ReadReceipt, error) {
	var result []quest.ReadReceipt
	for _, r := range f.receipts {
		if r.MessageID == messageID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReadReceiptRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.ReadReceipt, error) {
	var result []quest.ReadReceipt
	for _, r := range f.receipts {
		if r.QuestID == questID {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeProfileRepository struct {
	profiles map[uuid.UUID]profile.Profile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: make(map[uuid.UUID]profile.Profile)}
}

func (f *fakeProfileRepository) add(userID uuid.UUID, name string) {
	f.profiles[userID] = profile.Profile{UserID: userID, DisplayName: name}
}

func (f *fakeProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return &p, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	result := make(map[uuid.UUID]profile.Profile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := f.profiles[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

type fakeGeocoder struct {
	coord   geocode.Coordinate
	err     error
	suggest []geocode.Suggestion
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (geocode.Coordinate, error) {
	if f.err != nil {
		return geocode.Coordinate{}, f.err
	}
	return f.coord, nil
}

func (f *fakeGeocoder) Autocomplete(ctx context.Context, partial string) ([]geocode.Suggestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.suggest, nil
}

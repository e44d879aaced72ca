package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMessageRepository implements quest.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Save appends a chat message
func (r *GormMessageRepository) Save(ctx context.Context, m *quest.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID finds a message by its ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Message, error) {
	var m quest.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByQuest returns the full message history ordered ascending
func (r *GormMessageRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Message, error) {
	var messages []quest.Message
	if err := r.db.WithContext(ctx).
		Where("quest_id = ?", questID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// CountSince counts messages created after the watermark, excluding
// the viewer's own messages.
func (r *GormMessageRepository) CountSince(ctx context.Context, questID uuid.UUID, since time.Time, excludeSender uuid.UUID) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&quest.Message{}).
		Where("quest_id = ? AND created_at > ?", questID, since)
	if excludeSender != uuid.Nil {
		query = query.Where("sender_id <> ?", excludeSender)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormReadReceiptRepository implements quest.ReadReceiptRepository using GORM
type GormReadReceiptRepository struct {
	db *gorm.DB
}

// NewGormReadReceiptRepository creates a new GormReadReceiptRepository
func NewGormReadReceiptRepository(db *gorm.DB) *GormReadReceiptRepository {
	return &GormReadReceiptRepository{db: db}
}

// MarkRead upserts the receipt. Repeated calls for the same
// (message, reader) pair leave exactly one row.
func (r *GormReadReceiptRepository) MarkRead(ctx context.Context, receipt *quest.ReadReceipt) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "reader_id"}},
			DoNothing: true,
		}).
		Create(receipt).Error
}

// FindByMessage returns all receipts for a message
func (r *GormReadReceiptRepository) FindByMessage(ctx context.Context, messageID uuid.UUID) ([]quest.ReadReceipt, error) {
	var receipts []quest.ReadReceipt
	if err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindByQuest returns all receipts recorded for a quest's messages
func (r *GormReadReceiptRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.ReadReceipt, error) {
	var receipts []quest.ReadReceipt
	if err := r.db.WithContext(ctx).
		Where("quest_id = ?", questID).
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

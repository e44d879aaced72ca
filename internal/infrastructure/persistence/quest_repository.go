package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormQuestRepository implements quest.Repository using GORM
type GormQuestRepository struct {
	db *gorm.DB
}

// NewGormQuestRepository creates a new GormQuestRepository
func NewGormQuestRepository(db *gorm.DB) *GormQuestRepository {
	return &GormQuestRepository{db: db}
}

// FindByID finds a quest by its ID
func (r *GormQuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*quest.Quest, error) {
	var q quest.Quest
	if err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// FindAll finds all quests matching the filter
func (r *GormQuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quest.Quest, error) {
	var quests []quest.Quest
	query := r.applyFilter(r.db.WithContext(ctx).Model(&quest.Quest{}), filter)
	if err := query.Find(&quests).Error; err != nil {
		return nil, err
	}
	return quests, nil
}

// FindActive returns quests whose computed end instant is after now.
// The SQL filter keeps yesterday's rows in scope so an overnight span
// started the previous day is not cut off; the exact wrap rule is then
// applied in Go because the end instant is a derived value.
func (r *GormQuestRepository) FindActive(ctx context.Context, now time.Time) ([]quest.Quest, error) {
	var quests []quest.Quest
	cutoff := now.AddDate(0, 0, -1).Format("2006-01-02")
	if err := r.db.WithContext(ctx).
		Where("date >= ?", cutoff).
		Order("date asc, start_time asc").
		Find(&quests).Error; err != nil {
		return nil, err
	}

	active := quests[:0]
	for _, q := range quests {
		if q.IsActive(now) {
			active = append(active, q)
		}
	}
	return active, nil
}

// FindByOwner finds all quests created by the given user
func (r *GormQuestRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]quest.Quest, error) {
	var quests []quest.Quest
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&quests).Error; err != nil {
		return nil, err
	}
	return quests, nil
}

// Save creates or updates a quest
func (r *GormQuestRepository) Save(ctx context.Context, q *quest.Quest) error {
	return r.db.WithContext(ctx).Save(q).Error
}

// Delete removes a quest and cascades to its participants, messages
// and read receipts.
func (r *GormQuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quest_id = ?", id).Delete(&quest.ReadReceipt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quest_id = ?", id).Delete(&quest.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quest_id = ?", id).Delete(&quest.Participant{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&quest.Quest{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts quests matching the filter
func (r *GormQuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&quest.Quest{})
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	for field, value := range filter.Filters {
		query = query.Where(field+" = ?", value)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormQuestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}
	for field, value := range filter.Filters {
		query = query.Where(field+" = ?", value)
	}
	if filter.OrderBy != "" {
		dir := "asc"
		if filter.OrderDir == "desc" {
			dir = "desc"
		}
		query = query.Order(filter.OrderBy + " " + dir)
	}
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/quest"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParticipantRepository implements quest.ParticipantRepository using GORM
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewGormParticipantRepository creates a new GormParticipantRepository
func NewGormParticipantRepository(db *gorm.DB) *GormParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// Join inserts the membership edge if absent. A duplicate join is
// swallowed by the conflict clause so retried client calls stay safe.
func (r *GormParticipantRepository) Join(ctx context.Context, p *quest.Participant) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quest_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(p).Error
}

// Leave removes the membership edge; a missing edge is not an error
func (r *GormParticipantRepository) Leave(ctx context.Context, questID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("quest_id = ? AND user_id = ?", questID, userID).
		Delete(&quest.Participant{}).Error
}

// FindByQuest returns all membership edges for a quest
func (r *GormParticipantRepository) FindByQuest(ctx context.Context, questID uuid.UUID) ([]quest.Participant, error) {
	var participants []quest.Participant
	if err := r.db.WithContext(ctx).
		Where("quest_id = ?", questID).
		Order("created_at asc").
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// FindByUser returns all membership edges for a user
func (r *GormParticipantRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]quest.Participant, error) {
	var participants []quest.Participant
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// Exists reports whether the user has an explicit membership edge
func (r *GormParticipantRepository) Exists(ctx context.Context, questID, userID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&quest.Participant{}).
		Where("quest_id = ? AND user_id = ?", questID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByQuest counts explicit membership edges for a quest
func (r *GormParticipantRepository) CountByQuest(ctx context.Context, questID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&quest.Participant{}).
		Where("quest_id = ?", questID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

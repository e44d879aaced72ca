package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProfileRepository implements profile.Repository using GORM.
// Profiles are written by the identity provider; this repository
// only reads them.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByUserID finds a profile by the user's ID
func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var p profile.Profile
	if err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUserIDs loads profiles for a set of users in one query.
// Missing profiles are simply absent from the result map.
func (r *GormProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	result := make(map[uuid.UUID]profile.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var profiles []profile.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.UserID] = p
	}
	return result, nil
}

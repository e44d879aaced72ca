package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/shared"
)

// Gender is an optional, purely presentational attribute used for the
// participant-composition breakdown on quest markers.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Profile maps a user id to display data. Profiles are owned by the
// external identity provider; this service reads them only.
type Profile struct {
	shared.BaseEntity
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	DisplayName string    `gorm:"type:varchar(100);not null"`
	Gender      *Gender   `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// Repository defines the read-only persistence contract for profiles
type Repository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]Profile, error)
}

package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, gender *profile.Gender) {
	t.Helper()
	p := profile.Profile{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		DisplayName: name,
		Gender:      gender,
	}
	require.NoError(t, db.Create(&p).Error)
}

func TestGormProfileRepository_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	female := profile.GenderFemale
	seedProfile(t, db, userID, "Alice", &female)

	t.Run("finds existing profile", func(t *testing.T) {
		p, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", p.DisplayName)
		require.NotNil(t, p.Gender)
		assert.Equal(t, profile.GenderFemale, *p.Gender)
	})

	t.Run("returns not found for unknown user", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormProfileRepository_FindByUserIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProfileRepository(db)
	ctx := context.Background()

	a, b, missing := uuid.New(), uuid.New(), uuid.New()
	seedProfile(t, db, a, "Alice", nil)
	seedProfile(t, db, b, "Bob", nil)

	t.Run("loads present profiles, omits missing", func(t *testing.T) {
		profiles, err := repo.FindByUserIDs(ctx, []uuid.UUID{a, b, missing})
		require.NoError(t, err)
		assert.Len(t, profiles, 2)
		assert.Equal(t, "Alice", profiles[a].DisplayName)
		assert.Equal(t, "Bob", profiles[b].DisplayName)
		_, ok := profiles[missing]
		assert.False(t, ok)
	})

	t.Run("empty input yields empty map", func(t *testing.T) {
		profiles, err := repo.FindByUserIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})
}

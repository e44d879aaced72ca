package quest

import (
	"context"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/sidequest/backend/internal/infrastructure/cache"
)

// MembershipService handles joining and leaving quests
type MembershipService struct {
	questRepo       quest.Repository
	participantRepo quest.ParticipantRepository
	profileRepo     profile.Repository
	watermarks      cache.WatermarkStore
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	questRepo quest.Repository,
	participantRepo quest.ParticipantRepository,
	profileRepo profile.Repository,
	watermarks cache.WatermarkStore,
) *MembershipService {
	return &MembershipService{
		questRepo:       questRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		watermarks:      watermarks,
	}
}

// Join adds the caller to a quest. Joining a quest the caller already
// belongs to, including the caller's own quest, is a no-op.
func (s *MembershipService) Join(ctx context.Context, userID, questID uuid.UUID) error {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return err
	}
	if q.IsOwnedBy(userID) {
		return nil
	}

	p, err := quest.NewParticipant(questID, userID)
	if err != nil {
		return err
	}
	return s.participantRepo.Join(ctx, p)
}

// Leave removes the caller from a quest. The owner cannot leave their
// own quest; ending it is the only way out. Leaving a quest the caller
// never joined is a no-op. The leaving device's read watermark is
// dropped so a later rejoin starts with a clean unread count.
func (s *MembershipService) Leave(ctx context.Context, userID uuid.UUID, deviceID string, questID uuid.UUID) error {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return err
	}
	if q.IsOwnedBy(userID) {
		return shared.ErrForbidden
	}
	if err := s.participantRepo.Leave(ctx, questID, userID); err != nil {
		return err
	}
	return s.watermarks.Clear(ctx, userID, deviceID, questID)
}

// ListParticipants returns a quest's roster with the owner first
func (s *MembershipService) ListParticipants(ctx context.Context, questID uuid.UUID) ([]ParticipantResponse, error) {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	rows, err := s.participantRepo.FindByQuest(ctx, questID)
	if err != nil {
		return nil, err
	}

	userIDs := []uuid.UUID{q.OwnerID}
	for _, row := range rows {
		if row.UserID != q.OwnerID {
			userIDs = append(userIDs, row.UserID)
		}
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	roster := make([]ParticipantResponse, 0, len(userIDs))
	for i, userID := range userIDs {
		roster = append(roster, ParticipantResponse{
			UserID:      userID,
			DisplayName: displayName(profiles, userID),
			Gender:      genderOf(profiles, userID),
			IsOwner:     i == 0,
		})
	}
	return roster, nil
}

// IsMember reports whether a user belongs to a quest, counting the
// owner as an implicit member
func (s *MembershipService) IsMember(ctx context.Context, userID, questID uuid.UUID) (bool, error) {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return false, err
	}
	if q.IsOwnedBy(userID) {
		return true, nil
	}
	return s.participantRepo.Exists(ctx, questID, userID)
}

package quest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/domain/shared"
	"github.com/sidequest/backend/internal/infrastructure/geocode"
)

// QuestService handles quest lifecycle operations
type QuestService struct {
	questRepo       quest.Repository
	participantRepo quest.ParticipantRepository
	profileRepo     profile.Repository
	geocoder        geocode.Geocoder
	membership      *MembershipService
}

// NewQuestService creates a new QuestService
func NewQuestService(
	questRepo quest.Repository,
	participantRepo quest.ParticipantRepository,
	profileRepo profile.Repository,
	geocoder geocode.Geocoder,
	membership *MembershipService,
) *QuestService {
	return &QuestService{
		questRepo:       questRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		geocoder:        geocoder,
		membership:      membership,
	}
}

// Create posts a new quest owned by the caller. The location text is
// resolved to coordinates before anything is persisted; a quest without
// a resolved coordinate is never stored.
func (s *QuestService) Create(ctx context.Context, ownerID uuid.UUID, req CreateQuestRequest) (*QuestResponse, error) {
	lat, lng, err := s.resolveCoordinates(ctx, req)
	if err != nil {
		return nil, err
	}

	q, err := quest.NewQuest(ownerID, req.Title, quest.Category(req.Category),
		req.Date, req.StartTime, req.EndTime, req.Details, req.Location, lat, lng)
	if err != nil {
		return nil, err
	}

	if err := s.questRepo.Save(ctx, q); err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, []uuid.UUID{ownerID})
	if err != nil {
		return nil, err
	}

	response := ToQuestResponse(q, displayName(profiles, ownerID), 1, ownerID, true)
	return &response, nil
}

// resolveCoordinates uses client-provided coordinates when both are
// present (picked from an autocomplete suggestion) and geocodes the
// location text otherwise.
func (s *QuestService) resolveCoordinates(ctx context.Context, req CreateQuestRequest) (float64, float64, error) {
	if req.Latitude != nil && req.Longitude != nil {
		return *req.Latitude, *req.Longitude, nil
	}

	coord, err := s.geocoder.Geocode(ctx, req.Location)
	if err != nil {
		return 0, 0, err
	}
	return coord.Lat, coord.Lng, nil
}

// List returns active quests matching the filter, newest first
func (s *QuestService) List(ctx context.Context, viewerID uuid.UUID, filter QuestListFilter) ([]QuestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	quests, err := s.questRepo.FindActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	quests = applyFilter(quests, filter)

	memberships, err := s.membershipSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.profileRepo.FindByUserIDs(ctx, ownerIDs(quests))
	if err != nil {
		return nil, err
	}

	responses := make([]QuestResponse, 0, len(quests))
	for i := range quests {
		q := &quests[i]
		count, err := s.participantRepo.CountByQuest(ctx, q.ID)
		if err != nil {
			return nil, err
		}
		// owner is an implicit member and never stored as a row
		responses = append(responses, ToQuestResponse(q, displayName(profiles, q.OwnerID), count+1, viewerID, memberships[q.ID]))
	}
	return responses, nil
}

// GetDetail returns a quest with its full participant roster
func (s *QuestService) GetDetail(ctx context.Context, viewerID, questID uuid.UUID) (*QuestDetailResponse, error) {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return nil, err
	}

	participants, err := s.membership.ListParticipants(ctx, questID)
	if err != nil {
		return nil, err
	}

	isMember := false
	for _, p := range participants {
		if p.UserID == viewerID {
			isMember = true
			break
		}
	}

	ownerName := participants[0].DisplayName
	response := QuestDetailResponse{
		QuestResponse: ToQuestResponse(q, ownerName, int64(len(participants)), viewerID, isMember),
		Participants:  participants,
	}
	return &response, nil
}

// Delete ends a quest. Only the owner may end it; the quest row and
// all membership, chat, and receipt rows go with it.
func (s *QuestService) Delete(ctx context.Context, userID, questID uuid.UUID) error {
	q, err := s.questRepo.FindByID(ctx, questID)
	if err != nil {
		return err
	}
	if !q.IsOwnedBy(userID) {
		return shared.ErrForbidden
	}
	return s.questRepo.Delete(ctx, questID)
}

func (s *QuestService) membershipSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := s.participantRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		set[row.QuestID] = true
	}
	return set, nil
}

func applyFilter(quests []quest.Quest, filter QuestListFilter) []quest.Quest {
	if len(filter.Categories) == 0 && filter.Date == "" &&
		filter.StartAfter == "" && filter.EndBefore == "" {
		return quests
	}

	categories := make(map[string]bool, len(filter.Categories))
	for _, c := range filter.Categories {
		categories[c] = true
	}

	filtered := quests[:0]
	for _, q := range quests {
		if len(categories) > 0 && !categories[string(q.Category)] {
			continue
		}
		if filter.Date != "" && q.Date.Format("2006-01-02") != filter.Date {
			continue
		}
		// HH:MM strings compare lexicographically in time order
		if filter.StartAfter != "" && q.StartTime < filter.StartAfter {
			continue
		}
		if filter.EndBefore != "" && q.EndTime > filter.EndBefore {
			continue
		}
		filtered = append(filtered, q)
	}
	return filtered
}

func ownerIDs(quests []quest.Quest) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(quests))
	ids := make([]uuid.UUID, 0, len(quests))
	for _, q := range quests {
		if !seen[q.OwnerID] {
			seen[q.OwnerID] = true
			ids = append(ids, q.OwnerID)
		}
	}
	return ids
}

package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sidequest/backend/internal/domain/profile"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/infrastructure/config"
)

// Action is the one contextual button a marker quest offers the viewer
type Action string

const (
	ActionJoin  Action = "join"
	ActionLeave Action = "leave"
	ActionEnd   Action = "end"
)

// GenderBreakdown summarizes the roster composition of a quest
type GenderBreakdown struct {
	Male        int `json:"male"`
	Female      int `json:"female"`
	Unspecified int `json:"unspecified"`
}

// MarkerQuest is one quest shown inside a map marker popup
type MarkerQuest struct {
	ID               uuid.UUID       `json:"id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	Schedule         string          `json:"schedule"`
	Date             string          `json:"date"`
	Location         string          `json:"location"`
	CreatorName      string          `json:"creator_name"`
	ParticipantCount int             `json:"participant_count"`
	Genders          GenderBreakdown `json:"genders"`
	Action           Action          `json:"action"`
}

// Marker is one pin on the map. Quests anchored at the same coordinate
// share a marker.
type Marker struct {
	Latitude  float64       `json:"latitude"`
	Longitude float64       `json:"longitude"`
	Quests    []MarkerQuest `json:"quests"`
}

// Cluster is an aggregated group of markers shown at low zoom
type Cluster struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
}

// Camera positions the map viewport
type Camera struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// MarkersResponse is the full board state for one render
type MarkersResponse struct {
	Markers   []Marker  `json:"markers"`
	Clusters  []Cluster `json:"clusters"`
	Clustered bool      `json:"clustered"`
	Camera    Camera    `json:"camera"`
}

// MarkerService projects active quests onto the map
type MarkerService struct {
	questRepo       quest.Repository
	participantRepo quest.ParticipantRepository
	profileRepo     profile.Repository
	cfg             config.MapConfig
}

// NewMarkerService creates a new MarkerService
func NewMarkerService(
	questRepo quest.Repository,
	participantRepo quest.ParticipantRepository,
	profileRepo profile.Repository,
	cfg config.MapConfig,
) *MarkerService {
	return &MarkerService{
		questRepo:       questRepo,
		participantRepo: participantRepo,
		profileRepo:     profileRepo,
		cfg:             cfg,
	}
}

// DefaultCamera returns the configured initial viewport
func (s *MarkerService) DefaultCamera() Camera {
	return Camera{
		Latitude:  s.cfg.CenterLat,
		Longitude: s.cfg.CenterLng,
		Zoom:      s.cfg.DefaultZoom,
	}
}

// Markers builds the board for a viewer at a given zoom level. Quests
// at the same coordinate collapse into one marker; below the cluster
// zoom threshold markers aggregate into grid clusters.
func (s *MarkerService) Markers(ctx context.Context, viewerID uuid.UUID, filter FilterState, zoom int) (*MarkersResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if zoom <= 0 {
		zoom = s.cfg.DefaultZoom
	}

	quests, err := s.questRepo.FindActive(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	type anchor struct{ lat, lng float64 }
	markerIndex := make(map[anchor]int)
	markers := make([]Marker, 0)

	for i := range quests {
		q := &quests[i]
		if !filter.Matches(q) {
			continue
		}

		markerQuest, err := s.buildMarkerQuest(ctx, q, viewerID, memberships)
		if err != nil {
			return nil, err
		}

		key := anchor{q.Latitude, q.Longitude}
		if idx, ok := markerIndex[key]; ok {
			markers[idx].Quests = append(markers[idx].Quests, *markerQuest)
			continue
		}
		markerIndex[key] = len(markers)
		markers = append(markers, Marker{
			Latitude:  q.Latitude,
			Longitude: q.Longitude,
			Quests:    []MarkerQuest{*markerQuest},
		})
	}

	response := &MarkersResponse{
		Markers: markers,
		Camera:  Camera{Latitude: s.cfg.CenterLat, Longitude: s.cfg.CenterLng, Zoom: zoom},
	}
	if zoom < s.cfg.ClusterZoom {
		response.Clusters = clusterMarkers(markers, zoom)
		response.Clustered = true
		response.Markers = nil
	}
	return response, nil
}

func (s *MarkerService) buildMarkerQuest(ctx context.Context, q *quest.Quest, viewerID uuid.UUID, memberships map[uuid.UUID]bool) (*MarkerQuest, error) {
	rows, err := s.participantRepo.FindByQuest(ctx, q.ID)
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

	var genders GenderBreakdown
	for _, userID := range userIDs {
		p, ok := profiles[userID]
		switch {
		case !ok || p.Gender == nil:
			genders.Unspecified++
		case *p.Gender == profile.GenderMale:
			genders.Male++
		case *p.Gender == profile.GenderFemale:
			genders.Female++
		default:
			genders.Unspecified++
		}
	}

	action := ActionJoin
	switch {
	case q.IsOwnedBy(viewerID):
		action = ActionEnd
	case memberships[q.ID]:
		action = ActionLeave
	}

	creatorName := "Unknown adventurer"
	if p, ok := profiles[q.OwnerID]; ok {
		creatorName = p.DisplayName
	}

	return &MarkerQuest{
		ID:               q.ID,
		Title:            q.Title,
		Category:         string(q.Category),
		Schedule:         q.Schedule(),
		Date:             q.Date.Format("2006-01-02"),
		Location:         q.Location,
		CreatorName:      creatorName,
		ParticipantCount: len(userIDs),
		Genders:          genders,
		Action:           action,
	}, nil
}

func (s *MarkerService) membershipSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
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

// clusterMarkers buckets markers into a grid whose cell size halves
// with each zoom step, then emits one centroid per occupied cell.
func clusterMarkers(markers []Marker, zoom int) []Cluster {
	cell := 360.0 / float64(int64(1)<<uint(zoom))

	type cellKey struct{ row, col int64 }
	buckets := make(map[cellKey][]Marker)
	order := make([]cellKey, 0)
	for _, m := range markers {
		key := cellKey{
			row: int64(m.Latitude / cell),
			col: int64(m.Longitude / cell),
		}
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], m)
	}

	clusters := make([]Cluster, 0, len(buckets))
	for _, key := range order {
		group := buckets[key]
		var latSum, lngSum float64
		count := 0
		for _, m := range group {
			latSum += m.Latitude
			lngSum += m.Longitude
			count += len(m.Quests)
		}
		clusters = append(clusters, Cluster{
			Latitude:  latSum / float64(len(group)),
			Longitude: lngSum / float64(len(group)),
			Count:     count,
		})
	}
	return clusters
}

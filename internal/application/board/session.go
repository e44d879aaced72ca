package board

import (
	"context"
	"sync"

	"github.com/google/uuid"
	questapp "github.com/sidequest/backend/internal/application/quest"
	"github.com/sidequest/backend/internal/infrastructure/realtime"
)

// Session is one user's live board state: the current view, the map
// camera, and any chat feed subscriptions. Opening a chat subscribes
// to that quest's feeds; switching focus or closing tears them down,
// so at most one quest's feeds are live per session.
type Session struct {
	userID   uuid.UUID
	deviceID string
	chat     *questapp.ChatService
	feed     *realtime.FeedBus

	mu     sync.Mutex
	view   View
	camera Camera
	subs   []*realtime.Subscription
}

// NewSession creates an idle session with the given starting camera
func NewSession(userID uuid.UUID, deviceID string, chat *questapp.ChatService, feed *realtime.FeedBus, camera Camera) *Session {
	return &Session{
		userID:   userID,
		deviceID: deviceID,
		chat:     chat,
		feed:     feed,
		view:     IdleView(),
		camera:   camera,
	}
}

// View returns the current view
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Camera returns the current viewport
func (s *Session) Camera() Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// OpenCreate switches to the creation form, closing any open quest
func (s *Session) OpenCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = CreatingView()
}

// OpenDetail focuses a quest's detail sheet. Detail does not subscribe
// to feeds; only the chat view is live.
func (s *Session) OpenDetail(questID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = DetailView(questID)
}

// OpenChat focuses a quest's chat: everything unread is marked read,
// this device's watermark advances, and the session subscribes to the
// quest's message and receipt feeds. Any previous subscriptions are
// closed first.
func (s *Session) OpenChat(ctx context.Context, questID uuid.UUID) error {
	if err := s.chat.MarkAllRead(ctx, s.userID, s.deviceID, questID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = ChatView(questID)
	s.subs = []*realtime.Subscription{
		s.feed.Subscribe(questID, realtime.TopicMessages),
		s.feed.Subscribe(questID, realtime.TopicReadReceipts),
	}
	return nil
}

// Close returns the session to idle and drops all subscriptions
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = IdleView()
}

// Subscriptions returns the live feed subscriptions, if any
func (s *Session) Subscriptions() []*realtime.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*realtime.Subscription(nil), s.subs...)
}

// PanTo moves the camera without changing zoom
func (s *Session) PanTo(lat, lng float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Latitude = lat
	s.camera.Longitude = lng
}

// SetZoom changes the camera zoom level
func (s *Session) SetZoom(zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera.Zoom = zoom
}

// FocusQuest pans and zooms to a freshly created quest and returns to
// the idle map view
func (s *Session) FocusQuest(lat, lng float64, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked()
	s.view = IdleView()
	s.camera = Camera{Latitude: lat, Longitude: lng, Zoom: zoom}
}

func (s *Session) teardownLocked() {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
}

package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic identifies a per-quest change feed
type Topic string

const (
	// TopicMessages delivers chat message inserts
	TopicMessages Topic = "message"
	// TopicReadReceipts delivers read receipt inserts
	TopicReadReceipts Topic = "read_receipt"
)

// Event is one insert delivered on a feed
type Event struct {
	Topic     Topic       `json:"type"`
	QuestID   uuid.UUID   `json:"quest_id"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Subscription is one subscriber's handle on a (quest, topic) feed.
// Close is idempotent and must be called when the consumer goes away.
type Subscription struct {
	C chan Event

	bus     *FeedBus
	key     feedKey
	id      uint64
	closeMu sync.Once
}

// Close detaches the subscription from the bus and closes its channel
func (s *Subscription) Close() {
	s.closeMu.Do(func() {
		s.bus.unsubscribe(s.key, s.id)
		close(s.C)
	})
}

type feedKey struct {
	questID uuid.UUID
	topic   Topic
}

// FeedBus is an in-process change feed keyed by (quest, topic). Every
// publish is delivered to all current subscribers of that key in call
// order; a subscriber that cannot keep up has events dropped rather
// than blocking the publisher.
type FeedBus struct {
	mu          sync.RWMutex
	subscribers map[feedKey]map[uint64]*Subscription
	nextID      uint64
	buffer      int
	logger      *zap.Logger
}

// NewFeedBus creates a feed bus with the given per-subscriber buffer
func NewFeedBus(buffer int, logger *zap.Logger) *FeedBus {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedBus{
		subscribers: make(map[feedKey]map[uint64]*Subscription),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe attaches a new subscriber to the (quest, topic) feed
func (b *FeedBus) Subscribe(questID uuid.UUID, topic Topic) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := feedKey{questID: questID, topic: topic}
	b.nextID++
	sub := &Subscription{
		C:   make(chan Event, b.buffer),
		bus: b,
		key: key,
		id:  b.nextID,
	}
	if b.subscribers[key] == nil {
		b.subscribers[key] = make(map[uint64]*Subscription)
	}
	b.subscribers[key][sub.id] = sub
	return sub
}

// Publish delivers the event to every subscriber of its (quest, topic)
func (b *FeedBus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	key := feedKey{questID: event.QuestID, topic: event.Topic}
	for _, sub := range b.subscribers[key] {
		select {
		case sub.C <- event:
		default:
			b.logger.Warn("feed subscriber buffer full, dropping event",
				zap.String("quest_id", event.QuestID.String()),
				zap.String("topic", string(event.Topic)))
		}
	}
}

// SubscriberCount reports how many subscribers a (quest, topic) feed has
func (b *FeedBus) SubscriberCount(questID uuid.UUID, topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[feedKey{questID: questID, topic: topic}])
}

func (b *FeedBus) unsubscribe(key feedKey, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[key]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(b.subscribers, key)
	}
}

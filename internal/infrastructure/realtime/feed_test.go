package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedBus_PublishSubscribe(t *testing.T) {
	bus := NewFeedBus(8, nil)
	questID := uuid.New()

	t.Run("delivers events in publish order", func(t *testing.T) {
		sub := bus.Subscribe(questID, TopicMessages)
		defer sub.Close()

		for i := 0; i < 3; i++ {
			bus.Publish(Event{Topic: TopicMessages, QuestID: questID, Payload: i})
		}

		for i := 0; i < 3; i++ {
			select {
			case event := <-sub.C:
				assert.Equal(t, i, event.Payload)
				assert.False(t, event.Timestamp.IsZero())
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for event")
			}
		}
	})

	t.Run("topics are independent channels", func(t *testing.T) {
		msgSub := bus.Subscribe(questID, TopicMessages)
		readSub := bus.Subscribe(questID, TopicReadReceipts)
		defer msgSub.Close()
		defer readSub.Close()

		bus.Publish(Event{Topic: TopicReadReceipts, QuestID: questID, Payload: "receipt"})

		select {
		case event := <-readSub.C:
			assert.Equal(t, "receipt", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for receipt event")
		}

		select {
		case <-msgSub.C:
			t.Fatal("message subscriber must not receive read receipt events")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("events are scoped per quest", func(t *testing.T) {
		otherQuest := uuid.New()
		sub := bus.Subscribe(questID, TopicMessages)
		defer sub.Close()

		bus.Publish(Event{Topic: TopicMessages, QuestID: otherQuest, Payload: "elsewhere"})

		select {
		case <-sub.C:
			t.Fatal("subscriber must not receive another quest's events")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestSubscription_Close(t *testing.T) {
	bus := NewFeedBus(8, nil)
	questID := uuid.New()

	t.Run("close detaches the subscriber", func(t *testing.T) {
		sub := bus.Subscribe(questID, TopicMessages)
		require.Equal(t, 1, bus.SubscriberCount(questID, TopicMessages))

		sub.Close()
		assert.Equal(t, 0, bus.SubscriberCount(questID, TopicMessages))

		_, open := <-sub.C
		assert.False(t, open)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		sub := bus.Subscribe(questID, TopicMessages)
		sub.Close()
		assert.NotPanics(t, func() { sub.Close() })
	})

	t.Run("publish after close does not deliver", func(t *testing.T) {
		sub := bus.Subscribe(questID, TopicMessages)
		sub.Close()
		assert.NotPanics(t, func() {
			bus.Publish(Event{Topic: TopicMessages, QuestID: questID, Payload: "late"})
		})
	})
}

func TestFeedBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewFeedBus(1, nil)
	questID := uuid.New()

	sub := bus.Subscribe(questID, TopicMessages)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		// Buffer holds one event; the rest are dropped, never blocking
		for i := 0; i < 10; i++ {
			bus.Publish(Event{Topic: TopicMessages, QuestID: questID, Payload: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}

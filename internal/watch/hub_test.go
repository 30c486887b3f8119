package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/watch"
)

func TestHub_PublishToSubscriber(t *testing.T) {
	hub := watch.NewHub()

	ch, cancel := hub.Subscribe("user-1", "")
	defer cancel()

	hub.Publish("user-1", watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated})

	select {
	case ev := <-ch:
		assert.Equal(t, watch.CollectionLedger, ev.Collection)
		assert.Equal(t, watch.ActionCreated, ev.Action)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestHub_UserIsolation(t *testing.T) {
	hub := watch.NewHub()

	ch, cancel := hub.Subscribe("user-1", "")
	defer cancel()

	hub.Publish("user-2", watch.Event{Collection: watch.CollectionExpenses, Action: watch.ActionCreated})

	assert.Empty(t, ch, "events for another user must not be delivered")
}

func TestHub_CollectionFilter(t *testing.T) {
	hub := watch.NewHub()

	ch, cancel := hub.Subscribe("user-1", watch.CollectionInventory)
	defer cancel()

	hub.Publish("user-1", watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated})
	hub.Publish("user-1", watch.Event{Collection: watch.CollectionInventory, Action: watch.ActionUpdated})

	require.Len(t, ch, 1)
	ev := <-ch
	assert.Equal(t, watch.CollectionInventory, ev.Collection)
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := watch.NewHub()

	ch, cancel := hub.Subscribe("user-1", "")
	cancel()

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")

	// Publishing after cancel must not panic.
	hub.Publish("user-1", watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated})

	// Double cancel is a no-op.
	cancel()
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := watch.NewHub()

	ch, cancel := hub.Subscribe("user-1", "")
	defer cancel()

	// Overflow the buffer; Publish must never block.
	for range 100 {
		hub.Publish("user-1", watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated})
	}

	assert.NotEmpty(t, ch)
}

func TestHub_NilHubIsSafe(t *testing.T) {
	var hub *watch.Hub

	hub.Publish("user-1", watch.Event{Collection: watch.CollectionLedger, Action: watch.ActionCreated})
}

// Package watch is the in-process change feed behind the live-updating lists.
// Services publish an event after every successful write; the HTTP layer
// streams a user's events out over SSE. The transport is replaceable: core
// code only ever talks to the Hub.
package watch

import "sync"

type Collection string

const (
	CollectionLedger    Collection = "ledger"
	CollectionInventory Collection = "inventory"
	CollectionExpenses  Collection = "expenses"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event is one change to a user's data partition.
type Event struct {
	Collection Collection `json:"collection"`
	Action     Action     `json:"action"`
	Payload    any        `json:"payload,omitempty"`
}

const subscriberBuffer = 16

type subscriber struct {
	ch         chan Event
	collection Collection // empty means all collections
}

// Hub fans events out to per-user subscribers. A nil *Hub is valid and drops
// everything, so services can run without a live feed (tests, batch tools).
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[int]subscriber
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]subscriber)}
}

// Subscribe registers for a user's events, optionally filtered to one
// collection (pass "" for all). The returned cancel func must be called to
// release the subscription; after cancel the channel is closed.
func (h *Hub) Subscribe(userID string, collection Collection) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := subscriber{ch: make(chan Event, subscriberBuffer), collection: collection}

	if h.subs[userID] == nil {
		h.subs[userID] = make(map[int]subscriber)
	}

	id := h.next
	h.next++
	h.subs[userID][id] = sub

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if s, ok := h.subs[userID][id]; ok {
			delete(h.subs[userID], id)
			close(s.ch)
		}
	}

	return sub.ch, cancel
}

// Publish delivers ev to every matching subscriber of userID. Subscribers
// whose buffers are full miss the event; a write must never block on a slow
// reader.
func (h *Hub) Publish(userID string, ev Event) {
	if h == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs[userID] {
		if sub.collection != "" && sub.collection != ev.Collection {
			continue
		}

		select {
		case sub.ch <- ev:
		default:
		}
	}
}

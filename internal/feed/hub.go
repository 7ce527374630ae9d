// internal/feed/hub.go
//
// Live event feed. Command handlers Publish the events a command produced;
// websocket clients subscribed to that game receive them as
//
//	{"type":"events","events":[...]}
//
// A subscriber that cannot keep up is dropped and its connection closed;
// the client reconnects with ?since=<last seq> and gets the backlog.

package feed

import (
	"sync"

	"github.com/robalobadob/clue/internal/game"
)

const bufferSize = 32

// Message is what goes over the wire.
type Message struct {
	Type   string       `json:"type"`
	Events []game.Event `json:"events,omitempty"`
	Error  string       `json:"error,omitempty"`
}

type subscriber struct {
	ch chan Message
}

// Hub fans events out to the subscribers of each game.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers for gameID. The channel is closed by cancel, by Close,
// or when the subscriber falls behind.
func (h *Hub) Subscribe(gameID string) (<-chan Message, func()) {
	sub := &subscriber{ch: make(chan Message, bufferSize)}
	h.mu.Lock()
	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[*subscriber]struct{})
	}
	h.subs[gameID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() { h.drop(gameID, sub) })
	}
}

// Publish sends events to every subscriber of gameID without blocking.
func (h *Hub) Publish(gameID string, events []game.Event) {
	if len(events) == 0 {
		return
	}
	msg := Message{Type: "events", Events: events}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[gameID] {
		select {
		case sub.ch <- msg:
		default:
			h.dropLocked(gameID, sub)
		}
	}
}

// Close disconnects every subscriber of gameID.
func (h *Hub) Close(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[gameID] {
		h.dropLocked(gameID, sub)
	}
}

// Subscribers counts the live subscribers of gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[gameID])
}

func (h *Hub) drop(gameID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(gameID, sub)
}

func (h *Hub) dropLocked(gameID string, sub *subscriber) {
	subs := h.subs[gameID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.ch)
	if len(subs) == 0 {
		delete(h.subs, gameID)
	}
}

// internal/sse/broadcaster.go
//
// Server-Sent Events fanout for a single room.
// Carries two kinds of messages to connected clients:
//   - "sound" events mirroring the game engine's notification events
//     (flip/correct/wrong/win/lose), for audio feedback;
//   - "state" pings telling clients to refetch their role-redacted snapshot.
//
// Delivery is strictly fire-and-forget: sends are non-blocking, a slow or
// stuck client just misses messages, and nothing here can stall or panic the
// game session. The hub doubles as the session's game.Notifier.

package sse

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codewords/internal/game"
)

// clientBuffer is the per-subscriber channel capacity; messages beyond it are
// dropped rather than blocking the sender.
const clientBuffer = 16

// Message is one SSE frame.
type Message struct {
	Event string
	Data  string
}

// Hub fans messages out to the subscribers of one room.
type Hub struct {
	mu      sync.RWMutex
	clients map[chan Message]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan Message]struct{})}
}

// Subscribe registers a new client and returns its receive channel.
func (h *Hub) Subscribe() chan Message {
	ch := make(chan Message, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a client. The channel is closed so readers drain out.
func (h *Hub) Unsubscribe(ch chan Message) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// ClientCount reports the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every subscriber without blocking. Clients
// whose buffers are full are skipped.
func (h *Hub) Broadcast(event, data string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- Message{Event: event, Data: data}:
		default:
			log.Debug().Str("event", event).Msg("sse: dropping message for slow client")
		}
	}
}

// Notify implements game.Notifier by forwarding engine events as "sound"
// frames.
func (h *Hub) Notify(e game.Event) {
	h.Broadcast("sound", string(e))
}

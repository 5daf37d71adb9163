// internal/store/room.go
//
// A Room ties together everything one shared board needs: the seed that
// reproduces it, the live game session, the SSE hub feeding connected
// clients, and the participants who have joined. Rooms are ephemeral and
// in-memory only; when the process dies the rooms die with it.

package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/codewords/internal/game"
	"github.com/robalobadob/codewords/internal/sse"
)

// ErrNoParticipant is returned when a player ID is not registered in a room.
var ErrNoParticipant = errors.New("participant not found")

// Participant is one person in a room. The chosen role is local UI state, not
// session state — many participants may hold the same role.
type Participant struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Role game.Role `json:"role"`
}

// Room is one shared game: seed, session, event hub, participants.
type Room struct {
	ID      string
	Seed    string
	Hub     *sse.Hub
	Session *game.Session

	mu           sync.RWMutex
	participants map[string]Participant
}

// NewRoom wires an empty room around a hub and session.
func NewRoom(id, seed string, hub *sse.Hub, session *game.Session) *Room {
	return &Room{
		ID:           id,
		Seed:         seed,
		Hub:          hub,
		Session:      session,
		participants: make(map[string]Participant),
	}
}

// AddParticipant registers a player and issues their ID.
func (r *Room) AddParticipant(name string, role game.Role) Participant {
	p := Participant{ID: uuid.NewString(), Name: name, Role: role}
	r.mu.Lock()
	r.participants[p.ID] = p
	r.mu.Unlock()
	return p
}

// Participant looks a player up by ID.
func (r *Room) Participant(id string) (Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	if !ok {
		return Participant{}, ErrNoParticipant
	}
	return p, nil
}

// SetRole updates a player's chosen seat and returns the updated record.
func (r *Room) SetRole(id string, role game.Role) (Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return Participant{}, ErrNoParticipant
	}
	p.Role = role
	r.participants[id] = p
	return p, nil
}

// ReplaceSession swaps in a fresh session (reset), closing the old one so its
// timer is torn down.
func (r *Room) ReplaceSession(s *game.Session) {
	r.mu.Lock()
	old := r.Session
	r.Session = s
	r.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

// CurrentSession returns the live session.
func (r *Room) CurrentSession() *game.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Session
}

// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Rooms live only as long as the process; there is deliberately no durable
// backend behind this (games are not persisted).
//
// Characteristics:
//   - Stores *Room objects keyed by room ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing room IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for unknown room IDs.
var ErrNotFound = errors.New("room not found")

// Store defines room lookup for the HTTP layer.
type Store interface {
	// Save registers or replaces a room.
	Save(ctx context.Context, r *Room) error

	// Get retrieves a room by ID; ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Room, error)

	// Delete removes a room, tearing down its session.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards rooms map
	rooms map[string]*Room // keyed by Room.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rooms: make(map[string]*Room)}
}

func (m *memory) Save(ctx context.Context, r *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[r.ID] = r
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	r, ok := m.rooms[id]
	delete(m.rooms, id)
	m.mu.Unlock()
	if ok {
		if s := r.CurrentSession(); s != nil {
			s.Close()
		}
	}
	return nil
}

// internal/store/memory.go
//
// In-memory registry of live game connections.
// Each websocket connection owns one game session; the registry only keeps
// what other goroutines may touch: identity, timestamps and the cancel func
// that tears the connection (and its session) down.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned for unknown connection IDs.
var ErrNotFound = errors.New("not found")

// Live describes one connected player.
type Live struct {
	ID          string
	RemoteAddr  string
	ConnectedAt time.Time
	// Stop cancels the connection's context; the owner loop then closes its session.
	Stop context.CancelFunc
}

// Store defines the registry interface.
type Store interface {
	// Save adds or replaces an entry.
	Save(ctx context.Context, l *Live) error

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*Live, error)

	// Delete removes an entry; unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Len is the number of live entries.
	Len() int

	// StopAll cancels every entry and returns how many were cancelled.
	StopAll() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex     // guards lives map
	lives map[string]*Live // keyed by Live.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{lives: make(map[string]*Live)}
}

func (m *memory) Save(ctx context.Context, l *Live) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lives[l.ID] = l
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Live, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if l, ok := m.lives[id]; ok {
		return l, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lives, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lives)
}

// StopAll calls Stop outside the lock: owners delete themselves on the way out.
func (m *memory) StopAll() int {
	m.mu.RLock()
	stops := make([]context.CancelFunc, 0, len(m.lives))
	for _, l := range m.lives {
		if l.Stop != nil {
			stops = append(stops, l.Stop)
		}
	}
	m.mu.RUnlock()
	for _, stop := range stops {
		stop()
	}
	return len(stops)
}

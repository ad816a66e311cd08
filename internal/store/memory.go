// internal/store/memory.go
//
// In-memory registry of puzzle sessions for the HTTP server.
//
// Characteristics:
//   - Stores *session.Session values keyed by a random UUID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; durable progress goes through
//     save files.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/robalobadob/hive/internal/session"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for sessions.
type Store interface {
	// Add registers s and returns its new id.
	Add(ctx context.Context, s *session.Session) (string, error)

	// Get retrieves a session by id.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete forgets a session. Unknown ids are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session.Session)}
}

func (m *memory) Add(ctx context.Context, s *session.Session) (string, error) {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = s
	return id, nil
}

func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

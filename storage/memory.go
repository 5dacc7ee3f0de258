package storage

import (
	"context"
	"sync"
	"time"

	"ewintr.nl/yt2blog/session"
	"github.com/google/uuid"
)

type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[uuid.UUID]session.State
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		now:      time.Now,
		sessions: map[uuid.UUID]session.State{},
	}
}

func (m *Memory) Find(_ context.Context, id uuid.UUID) (*session.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if state.Expired(m.ttl, m.now()) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}

	return &state, nil
}

// Save stores a copy of the state and drops every session that expired,
// including the ones whose id is never looked up again.
func (m *Memory) Save(_ context.Context, state *session.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, stored := range m.sessions {
		if stored.Expired(m.ttl, now) {
			delete(m.sessions, id)
		}
	}

	state.UpdatedAt = now
	m.sessions[state.ID] = *state

	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)

	return nil
}

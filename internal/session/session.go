package session

import (
	"sync"
	"time"
)

// Session owns the State of one browser tab or chat. All mutations go
// through the Controller.
type Session struct {
	id string

	mu        sync.Mutex
	state     State
	updatedAt time.Time
}

// New creates a session in its initial state
func New(id string) *Session {
	return &Session{id: id, updatedAt: time.Now()}
}

func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UpdatedAt returns the time of the last state change
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// apply runs a transition atomically. On error the state is left untouched
// and the current state is returned.
func (s *Session) apply(transition func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := transition(s.state)
	if err != nil {
		return s.state, err
	}

	s.state = next
	s.updatedAt = time.Now()
	return next, nil
}

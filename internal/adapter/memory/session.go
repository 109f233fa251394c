package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// SessionStore keeps server-side operator sessions.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[uuid.UUID]domain.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; ok {
		return fmt.Errorf("session %s: %w", sess.ID, domain.ErrAlreadyExists)
	}
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *SessionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return &sess, nil
}

// Revoke marks the session as logged out. The first revocation time wins.
func (s *SessionStore) Revoke(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if sess.RevokedAt == nil {
		at = at.UTC()
		sess.RevokedAt = &at
		s.sessions[id] = sess
	}
	return nil
}

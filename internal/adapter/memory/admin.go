package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/studio-bookings/internal/domain"
)

// AdminStore keeps operator accounts. Emails are unique case-insensitively.
type AdminStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]domain.Admin
	byEmail map[string]uuid.UUID
}

// NewAdminStore returns an empty store.
func NewAdminStore() *AdminStore {
	return &AdminStore{
		byID:    make(map[uuid.UUID]domain.Admin),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (s *AdminStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("admin %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (s *AdminStore) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("admin %s: %w", email, domain.ErrNotFound)
	}
	a := s.byID[id]
	return &a, nil
}

func (s *AdminStore) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(a.Email)
	if _, ok := s.byEmail[key]; ok {
		return nil, fmt.Errorf("admin %s: %w", a.Email, domain.ErrAlreadyExists)
	}
	if _, ok := s.byID[a.ID]; ok {
		return nil, fmt.Errorf("admin %s: %w", a.ID, domain.ErrAlreadyExists)
	}

	s.byID[a.ID] = *a
	s.byEmail[key] = a.ID

	out := *a
	return &out, nil
}

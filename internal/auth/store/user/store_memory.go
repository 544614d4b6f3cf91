// Package user persists registered users.
package user

import (
	"context"
	"strings"
	"sync"

	"travelpoints/internal/auth/models"
	id "travelpoints/pkg/domain"
	"travelpoints/pkg/platform/sentinel"
)

// Field names reported by DuplicateError.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
)

// DuplicateError reports which unique field a write collided on. It unwraps
// to sentinel.ErrAlreadyUsed.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already used" }
func (e *DuplicateError) Unwrap() error { return sentinel.ErrAlreadyUsed }

// InMemoryUserStore keeps users in a map. Email matching is case-insensitive.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[id.UserID]*models.User
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[id.UserID]*models.User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(u); err != nil {
		return err
	}
	stored := *u
	s.users[u.ID] = &stored
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			found := *u
			return &found, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// Update replaces the stored user, enforcing uniqueness against every other
// user.
func (s *InMemoryUserStore) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return sentinel.ErrNotFound
	}
	if err := s.checkUnique(u); err != nil {
		return err
	}
	stored := *u
	s.users[u.ID] = &stored
	return nil
}

func (s *InMemoryUserStore) checkUnique(u *models.User) error {
	for _, existing := range s.users {
		if existing.ID == u.ID {
			continue
		}
		if strings.EqualFold(existing.Email, u.Email) {
			return &DuplicateError{Field: FieldEmail}
		}
		if existing.Username == u.Username {
			return &DuplicateError{Field: FieldUsername}
		}
	}
	return nil
}

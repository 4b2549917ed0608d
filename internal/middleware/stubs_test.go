package middleware

import (
	"context"
	"sync"

	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/domain/user"
)

// stubUserStore implements database.Store with an in-memory user list.
// The section methods are unused by the middleware under test.
type stubUserStore struct {
	mu    sync.Mutex
	users []user.User
}

func (s *stubUserStore) GetUser(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) CreateUser(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, *u)
	return nil
}

func (s *stubUserStore) ListSections(context.Context) ([]section.Section, error) {
	return nil, nil
}

func (s *stubUserStore) GetSection(context.Context, string) (*section.Section, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) CreateSection(context.Context, section.CreateRequest) (*section.Section, error) {
	return nil, domain.ErrConflict
}

func (s *stubUserStore) UpdateSection(context.Context, string, section.UpdateRequest) (*section.Section, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) UpdateSectionPosition(context.Context, string, int) error {
	return domain.ErrNotFound
}

func (s *stubUserStore) DeleteSection(context.Context, string) error {
	return domain.ErrNotFound
}

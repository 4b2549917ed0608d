package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/domain/user"
)

// mockStore is an in-memory database.Store for handler tests.
type mockStore struct {
	mu       sync.Mutex
	sections []section.Section
	users    []user.User
	nextID   int

	// failPositionIDs makes UpdateSectionPosition fail for the given IDs.
	failPositionIDs map[string]bool
}

func newMockStore() *mockStore {
	return &mockStore{failPositionIDs: map[string]bool{}}
}

func (m *mockStore) ListSections(context.Context) ([]section.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]section.Section, len(m.sections))
	copy(out, m.sections)
	return out, nil
}

func (m *mockStore) GetSection(_ context.Context, id string) (*section.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].ID == id {
			s := m.sections[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateSection(_ context.Context, req section.CreateRequest) (*section.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s := section.Section{
		ID:        fmt.Sprintf("sec-%d", m.nextID),
		Title:     req.Title,
		Content:   req.Content,
		Position:  req.Position,
		Status:    section.StatusPublished,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.sections = append(m.sections, s)
	return &s, nil
}

func (m *mockStore) UpdateSection(_ context.Context, id string, req section.UpdateRequest) (*section.Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].ID == id {
			m.sections[i].Title = req.Title
			m.sections[i].Content = req.Content
			m.sections[i].Position = req.Position
			m.sections[i].UpdatedAt = time.Now()
			s := m.sections[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) UpdateSectionPosition(_ context.Context, id string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPositionIDs[id] {
		return fmt.Errorf("update position: %w", domain.ErrNotFound)
	}
	for i := range m.sections {
		if m.sections[i].ID == id {
			m.sections[i].Position = position
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) DeleteSection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].ID == id {
			m.sections = append(m.sections[:i], m.sections[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) GetUser(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].Email == email {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, *u)
	return nil
}

func (m *mockStore) sectionByID(id string) *section.Section {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sections {
		if m.sections[i].ID == id {
			s := m.sections[i]
			return &s
		}
	}
	return nil
}

// memCache is a map-backed cache.Cache with TTL support.
type memCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	data    []byte
	expires time.Time
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]memEntry{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{data: value, expires: time.Now().Add(ttl)}
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

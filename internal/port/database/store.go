// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/domain/user"
)

// Store is the port interface for database operations.
type Store interface {
	// Sections
	ListSections(ctx context.Context) ([]section.Section, error)
	GetSection(ctx context.Context, id string) (*section.Section, error)
	CreateSection(ctx context.Context, req section.CreateRequest) (*section.Section, error)
	UpdateSection(ctx context.Context, id string, req section.UpdateRequest) (*section.Section, error)
	UpdateSectionPosition(ctx context.Context, id string, position int) error
	DeleteSection(ctx context.Context, id string) error

	// Users
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
}

// Package section defines the manual section entity and its request types.
package section

import (
	"fmt"
	"strings"
	"time"

	"github.com/onboardhq/manuald/internal/domain"
)

// StatusPublished is the only status a manual section can have. There is no
// draft workflow: sections created through the admin API or the importer are
// immediately visible to clients.
const StatusPublished = "published"

// Section is a single page of the onboarding manual. Sections form a flat
// list ordered by Position ascending, with ties broken by creation time.
type Section struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Position  int       `json:"position"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListItem is the list-view projection of a section: no full content, just
// a short plain-text excerpt for the manual index page.
type ListItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Position int    `json:"position"`
}

// CreateRequest carries the fields needed to create a section. Title and
// Content are sanitized by the service before they reach the store.
type CreateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// Validate checks the request against the entity invariants.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}

// UpdateRequest carries the mutable fields of a section.
type UpdateRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

// Validate checks the request against the entity invariants.
func (r *UpdateRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	return nil
}

// ExportEntry is one element of the JSON export format. The same shape is
// accepted by the importer, so an exported file can be re-imported as-is.
type ExportEntry struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"order"`
}

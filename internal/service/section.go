package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/port/database"
	"github.com/onboardhq/manuald/internal/sanitize"
)

// SectionService manages manual sections: CRUD, display ordering and export.
type SectionService struct {
	store database.Store
}

// NewSectionService creates a new section service.
func NewSectionService(store database.Store) *SectionService {
	return &SectionService{store: store}
}

// List returns the list-view projection of all sections in display order.
func (s *SectionService) List(ctx context.Context) ([]section.ListItem, error) {
	sections, err := s.store.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]section.ListItem, 0, len(sections))
	for _, sec := range sections {
		items = append(items, section.ListItem{
			ID:       sec.ID,
			Title:    sec.Title,
			Excerpt:  section.Excerpt(sec.Content),
			Position: sec.Position,
		})
	}
	return items, nil
}

// Get returns a single section with its full content.
func (s *SectionService) Get(ctx context.Context, id string) (*section.Section, error) {
	return s.store.GetSection(ctx, id)
}

// Create validates, sanitizes and persists a new section.
func (s *SectionService) Create(ctx context.Context, req section.CreateRequest) (*section.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Title = sanitize.HTML(req.Title)
	req.Content = sanitize.HTML(req.Content)
	return s.store.CreateSection(ctx, req)
}

// Update validates, sanitizes and persists changes to a section.
func (s *SectionService) Update(ctx context.Context, id string, req section.UpdateRequest) (*section.Section, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.Title = sanitize.HTML(req.Title)
	req.Content = sanitize.HTML(req.Content)
	return s.store.UpdateSection(ctx, id, req)
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteSection(ctx, id)
}

// Reorder writes each section's position to its zero-based index in ids.
// Updates are applied one by one with no transaction: a failed item does
// not roll back the ones already written, and two concurrent calls
// interleave last-writer-wins per section. Failed IDs are returned so the
// caller can surface them.
func (s *SectionService) Reorder(ctx context.Context, ids []string) (failed []string, err error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: order sequence is empty", domain.ErrValidation)
	}

	for i, id := range ids {
		if updateErr := s.store.UpdateSectionPosition(ctx, id, i); updateErr != nil {
			slog.Warn("reorder: position update failed", "section_id", id, "position", i, "error", updateErr)
			failed = append(failed, id)
		}
	}
	return failed, nil
}

// Export returns all sections in the import file format, display order
// preserved, so the output can be fed straight back into the importer.
func (s *SectionService) Export(ctx context.Context) ([]section.ExportEntry, error) {
	sections, err := s.store.ListSections(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]section.ExportEntry, 0, len(sections))
	for _, sec := range sections {
		entries = append(entries, section.ExportEntry{
			Title:    sec.Title,
			Content:  sec.Content,
			Position: sec.Position,
		})
	}
	return entries, nil
}

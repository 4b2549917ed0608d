package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/section"
)

const sectionColumns = `id, title, content, position, status, created_at, updated_at`

func scanSection(row scannable) (section.Section, error) {
	var s section.Section
	err := row.Scan(&s.ID, &s.Title, &s.Content, &s.Position, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return section.Section{}, fmt.Errorf("scan section: %w", err)
	}
	return s, nil
}

// ListSections returns all manual sections in display order: position
// ascending with creation order breaking ties.
func (s *Store) ListSections(ctx context.Context) ([]section.Section, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sectionColumns+`
		 FROM manual_sections
		 ORDER BY position ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var sections []section.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// GetSection returns a single section by ID.
func (s *Store) GetSection(ctx context.Context, id string) (*section.Section, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sectionColumns+` FROM manual_sections WHERE id = $1`, id)

	sec, err := scanSection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get section %s: %w", id, err)
	}
	return &sec, nil
}

// CreateSection inserts a new section and returns it with store-assigned fields.
func (s *Store) CreateSection(ctx context.Context, req section.CreateRequest) (*section.Section, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO manual_sections (title, content, position, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+sectionColumns,
		req.Title, req.Content, req.Position, section.StatusPublished)

	sec, err := scanSection(row)
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	return &sec, nil
}

// UpdateSection replaces the mutable fields of a section.
func (s *Store) UpdateSection(ctx context.Context, id string, req section.UpdateRequest) (*section.Section, error) {
	row := s.pool.QueryRow(ctx,
		`UPDATE manual_sections
		 SET title = $2, content = $3, position = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+sectionColumns,
		id, req.Title, req.Content, req.Position)

	sec, err := scanSection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update section %s: %w", id, err)
	}
	return &sec, nil
}

// UpdateSectionPosition writes only the position of a section. Used by the
// reorder flow, one statement per section, no surrounding transaction.
func (s *Store) UpdateSectionPosition(ctx context.Context, id string, position int) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE manual_sections SET position = $2, updated_at = now() WHERE id = $1`,
		id, position)
	if err != nil {
		return fmt.Errorf("update section position %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update section position %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteSection removes a section by ID.
func (s *Store) DeleteSection(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM manual_sections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete section %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete section %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

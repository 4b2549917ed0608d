package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/onboardhq/manuald/internal/domain"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/service"
)

func seedSections(t *testing.T, store *mockStore, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for _, title := range titles {
		s, err := store.CreateSection(context.Background(), section.CreateRequest{
			Title:   title,
			Content: "<p>" + title + "</p>",
		})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, s.ID)
	}
	return ids
}

func TestReorderAssignsSequentialPositions(t *testing.T) {
	store := newMockStore()
	svc := service.NewSectionService(store)
	ids := seedSections(t, store, "a", "b", "c")

	// Submit in reverse.
	submitted := []string{ids[2], ids[0], ids[1]}
	failed, err := svc.Reorder(context.Background(), submitted)
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 0 {
		t.Fatalf("expected no failures, got %v", failed)
	}

	for i, id := range submitted {
		if got := store.sectionByID(id).Position; got != i {
			t.Errorf("section %s: expected position %d, got %d", id, i, got)
		}
	}
}

func TestReorderEmptySequenceRejected(t *testing.T) {
	svc := service.NewSectionService(newMockStore())

	_, err := svc.Reorder(context.Background(), nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReorderCollectsPerItemFailures(t *testing.T) {
	store := newMockStore()
	svc := service.NewSectionService(store)
	ids := seedSections(t, store, "a", "b", "c")
	store.failPositionIDs[ids[1]] = true

	failed, err := svc.Reorder(context.Background(), ids)
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || failed[0] != ids[1] {
		t.Fatalf("expected failure for %s, got %v", ids[1], failed)
	}
	// Siblings are still updated.
	if store.sectionByID(ids[0]).Position != 0 {
		t.Error("expected first section updated despite sibling failure")
	}
	if store.sectionByID(ids[2]).Position != 2 {
		t.Error("expected third section updated despite sibling failure")
	}
}

func TestCreateValidatesAndSanitizes(t *testing.T) {
	store := newMockStore()
	svc := service.NewSectionService(store)

	_, err := svc.Create(context.Background(), section.CreateRequest{Title: " ", Content: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	s, err := svc.Create(context.Background(), section.CreateRequest{
		Title:   "Welcome",
		Content: `<p>hi</p><script>x()</script>`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(s.Content, "script") {
		t.Errorf("expected content sanitized, got %q", s.Content)
	}
	if s.Status != section.StatusPublished {
		t.Errorf("expected published status, got %s", s.Status)
	}
}

func TestListProducesExcerpts(t *testing.T) {
	store := newMockStore()
	svc := service.NewSectionService(store)

	long := "<p>" + strings.Repeat("word ", 30) + "</p>"
	if _, err := store.CreateSection(context.Background(), section.CreateRequest{Title: "Long", Content: long}); err != nil {
		t.Fatal(err)
	}

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if strings.Contains(items[0].Excerpt, "<p>") {
		t.Errorf("expected excerpt without markup, got %q", items[0].Excerpt)
	}
	if got := len(strings.Fields(items[0].Excerpt)); got != section.ExcerptWords {
		t.Errorf("expected %d-word excerpt, got %d", section.ExcerptWords, got)
	}
	if !strings.HasSuffix(items[0].Excerpt, "…") {
		t.Errorf("expected trimmed excerpt to end with ellipsis, got %q", items[0].Excerpt)
	}
}

func TestExportRoundTripsThroughImport(t *testing.T) {
	store := newMockStore()
	svc := service.NewSectionService(store)
	seedSections(t, store, "a", "b")

	entries, err := svc.Export(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Feed the export back through the importer; count must match.
	data := `[`
	for i, e := range entries {
		if i > 0 {
			data += ","
		}
		data += `{"title":"` + e.Title + `","content":"` + strings.ReplaceAll(e.Content, `"`, `\"`) + `","order":0}`
	}
	data += `]`

	imp := service.NewImporterService(store, 1<<20)
	res := imp.Import(context.Background(), jsonUpload(data))
	if res.Created != 2 {
		t.Fatalf("expected re-import of export to create 2, got %d (%s)", res.Created, res.Message)
	}
}

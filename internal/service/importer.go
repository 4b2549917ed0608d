package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/onboardhq/manuald/internal/domain/flash"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/port/database"
	"github.com/onboardhq/manuald/internal/sanitize"
)

// allowedImportMIMEs is the accepted set of declared content types for an
// uploaded import file. Browsers report .json files as either of these.
var allowedImportMIMEs = map[string]bool{
	"application/json": true,
	"text/plain":       true,
}

// Upload describes an uploaded import file. A nil *Upload means no file
// was attached to the request.
type Upload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// ImportResult is the outcome of an import attempt, already shaped as the
// flash message the caller writes before redirecting.
type ImportResult struct {
	Kind    flash.Kind
	Message string
	Created int
}

// ImporterService validates an uploaded JSON file and creates one manual
// section per valid entry.
type ImporterService struct {
	store    database.Store
	maxBytes int64
}

// NewImporterService creates an importer with the given file size cap.
func NewImporterService(store database.Store, maxBytes int64) *ImporterService {
	return &ImporterService{store: store, maxBytes: maxBytes}
}

// Import runs the validation and ingestion pipeline. Every failure is
// reported through the returned ImportResult rather than an error; entries
// created before a later entry fails stay created.
func (s *ImporterService) Import(ctx context.Context, upload *Upload) ImportResult {
	fail := func(msg string) ImportResult {
		return ImportResult{Kind: flash.KindError, Message: msg}
	}

	if upload == nil || upload.Reader == nil {
		return fail("No file uploaded.")
	}

	if !strings.HasSuffix(strings.ToLower(upload.Filename), ".json") {
		return fail("File must have a .json extension.")
	}

	if !allowedImportMIMEs[upload.ContentType] {
		return fail("Invalid file type. Please upload a JSON file.")
	}

	data, err := io.ReadAll(io.LimitReader(upload.Reader, s.maxBytes))
	if err != nil {
		return fail("Unable to read uploaded file.")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fail("Invalid JSON format: " + err.Error())
	}
	if dec.More() {
		return fail("Invalid JSON format: unexpected trailing data")
	}

	entries, ok := raw.([]any)
	if !ok {
		return fail("JSON must contain an array of objects.")
	}

	created := 0
	var entryErrors []string

	for i, raw := range entries {
		idx := i + 1 // 1-based in messages

		entry, ok := raw.(map[string]any)
		if !ok {
			entryErrors = append(entryErrors, fmt.Sprintf("Entry %d is not an object.", idx))
			continue
		}

		title, ok := entry["title"].(string)
		if !ok || title == "" {
			entryErrors = append(entryErrors, fmt.Sprintf("Entry %d missing required field %q.", idx, "title"))
			continue
		}

		content, ok := entry["content"].(string)
		if !ok || content == "" {
			entryErrors = append(entryErrors, fmt.Sprintf("Entry %d missing required field %q.", idx, "content"))
			continue
		}

		// A present but non-integer order discards the whole entry; it
		// does not fall back to the default.
		position := 0
		if rawOrder, present := entry["order"]; present {
			n, err := integerValue(rawOrder)
			if err != nil {
				entryErrors = append(entryErrors, fmt.Sprintf("Entry %d has invalid %q field (must be integer).", idx, "order"))
				continue
			}
			position = n
		}

		_, err := s.store.CreateSection(ctx, section.CreateRequest{
			Title:    sanitize.HTML(title),
			Content:  sanitize.HTML(content),
			Position: position,
		})
		if err != nil {
			entryErrors = append(entryErrors, fmt.Sprintf("Entry %d failed to import: %s", idx, err))
			continue
		}

		created++
	}

	if created > 0 {
		msg := fmt.Sprintf("Successfully imported %d section(s).", created)
		if len(entryErrors) > 0 {
			msg += " Some entries had errors: " + strings.Join(entryErrors, " ")
		}
		return ImportResult{Kind: flash.KindSuccess, Message: msg, Created: created}
	}

	msg := "No entries were imported."
	if len(entryErrors) > 0 {
		msg += " Errors: " + strings.Join(entryErrors, " ")
	}
	return ImportResult{Kind: flash.KindError, Message: msg}
}

// integerValue converts a decoded JSON value to an int, rejecting strings,
// booleans and numbers with a fractional part.
func integerValue(v any) (int, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, errors.New("not a number")
	}
	n, err := num.Int64()
	if err != nil {
		return 0, errors.New("not an integer")
	}
	return int(n), nil
}

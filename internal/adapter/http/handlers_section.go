package http

import (
	"net/http"

	mdotel "github.com/onboardhq/manuald/internal/adapter/otel"
	"github.com/onboardhq/manuald/internal/domain/section"
	"github.com/onboardhq/manuald/internal/domain/user"
	"github.com/onboardhq/manuald/internal/middleware"
	"github.com/onboardhq/manuald/internal/service"
)

// ListSections returns all sections in display order with excerpts.
func (h *Handlers) ListSections(w http.ResponseWriter, r *http.Request) {
	items, err := h.Sections.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list sections")
		return
	}
	if items == nil {
		items = []section.ListItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetSection returns a single section with its full content.
func (h *Handlers) GetSection(w http.ResponseWriter, r *http.Request) {
	sec, err := h.Sections.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "section not found")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// CreateSection creates a new manual section.
func (h *Handlers) CreateSection(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[section.CreateRequest](w, r)
	if !ok {
		return
	}

	sec, err := h.Sections.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "failed to create section")
		return
	}
	writeJSON(w, http.StatusCreated, sec)
}

// UpdateSection replaces the mutable fields of a section.
func (h *Handlers) UpdateSection(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[section.UpdateRequest](w, r)
	if !ok {
		return
	}

	sec, err := h.Sections.Update(r.Context(), urlParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err, "section not found")
		return
	}
	writeJSON(w, http.StatusOK, sec)
}

// DeleteSection removes a section.
func (h *Handlers) DeleteSection(w http.ResponseWriter, r *http.Request) {
	if err := h.Sections.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "section not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSections streams all sections in the import file format.
func (h *Handlers) ExportSections(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Sections.Export(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to export sections")
		return
	}
	if entries == nil {
		entries = []section.ExportEntry{}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="manual-sections.json"`)
	writeJSON(w, http.StatusOK, entries)
}

// ReorderSections applies a full submitted identifier sequence to section
// positions. The request is form-encoded with a `nonce` field and the
// sequence as repeated `order[]` keys. Checks run in a fixed order: token,
// capability, payload shape; nothing is written when any of them fails.
func (h *Handlers) ReorderSections(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeAjaxError(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := r.ParseForm(); err != nil {
		writeAjaxError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	token := r.PostForm.Get("nonce")
	if token == "" || h.Nonces.Consume(r.Context(), token, service.ActionReorderSections, u.ID) != nil {
		writeAjaxError(w, http.StatusForbidden, "Nonce verification failed")
		return
	}

	if !u.Can(user.CapManageManual) {
		writeAjaxError(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	ids := r.PostForm["order[]"]
	if len(ids) == 0 {
		ids = r.PostForm["order"]
	}
	if len(ids) == 0 {
		writeAjaxError(w, http.StatusBadRequest, "Invalid order data")
		return
	}

	ctx, span := mdotel.StartReorderSpan(r.Context(), len(ids))
	failed, err := h.Sections.Reorder(ctx, ids)
	span.End()
	if err != nil {
		writeAjaxError(w, http.StatusBadRequest, "Invalid order data")
		return
	}
	if h.Metrics != nil {
		h.Metrics.Reorders.Add(r.Context(), 1)
	}

	data := map[string]any{"message": "Sections reordered successfully"}
	if len(failed) > 0 {
		data["failed"] = failed
	}
	writeAjaxSuccess(w, data)
}

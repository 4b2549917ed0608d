package http

import (
	"log/slog"
	"net/http"

	mdotel "github.com/onboardhq/manuald/internal/adapter/otel"
	"github.com/onboardhq/manuald/internal/domain/flash"
	"github.com/onboardhq/manuald/internal/domain/user"
	"github.com/onboardhq/manuald/internal/middleware"
	"github.com/onboardhq/manuald/internal/service"
)

// multipartMemoryLimit caps how much of an upload is held in memory before
// spilling to a temp file.
const multipartMemoryLimit = 1 << 20 // 1 MB

// Import handles the JSON import form post. Authorization failures are a
// hard stop; every later failure is written to the flash slot and answered
// with a redirect back to the import page, so the browser form flow never
// sees an error page once it is past the token check.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+multipartMemoryLimit)
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form data")
		return
	}

	token := r.PostForm.Get("_wpnonce")
	if token == "" || h.Nonces.Consume(r.Context(), token, service.ActionImportSections, u.ID) != nil {
		writeError(w, http.StatusForbidden, "Nonce verification failed.")
		return
	}

	if !u.Can(user.CapManageManual) {
		writeError(w, http.StatusForbidden, "Insufficient permissions.")
		return
	}

	var upload *service.Upload
	filename := ""
	if file, header, err := r.FormFile("wcob_import_file"); err == nil {
		defer func() { _ = file.Close() }()
		filename = header.Filename
		upload = &service.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		}
	}

	ctx, span := mdotel.StartImportSpan(r.Context(), filename)
	result := h.Importer.Import(ctx, upload)
	span.End()

	if h.Metrics != nil {
		h.Metrics.ImportsRun.Add(r.Context(), 1)
		h.Metrics.SectionsImported.Add(r.Context(), int64(result.Created))
		if result.Kind == flash.KindError {
			h.Metrics.ImportFailures.Add(r.Context(), 1)
		}
	}

	if err := h.Flash.Set(r.Context(), result.Kind, result.Message); err != nil {
		slog.Error("failed to store import message", "error", err)
	}

	slog.Info("import finished",
		"kind", result.Kind,
		"created", result.Created,
		"user", u.Email,
	)

	http.Redirect(w, r, h.ImportPagePath, http.StatusSeeOther)
}

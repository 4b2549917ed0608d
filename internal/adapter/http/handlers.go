package http

import (
	"net/http"

	mdotel "github.com/onboardhq/manuald/internal/adapter/otel"
	"github.com/onboardhq/manuald/internal/middleware"
	"github.com/onboardhq/manuald/internal/service"
)

// Handlers aggregates the services the HTTP layer dispatches into.
type Handlers struct {
	Auth     *service.AuthService
	Nonces   *service.NonceService
	Sections *service.SectionService
	Importer *service.ImporterService
	Flash    *service.FlashService
	Metrics  *mdotel.Metrics // optional

	// ImportPagePath is the redirect target after an import attempt.
	ImportPagePath string
	// MaxUploadBytes bounds the import request body.
	MaxUploadBytes int64
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a bearer token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[loginRequest](w, r)
	if !ok {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, token, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  u,
	})
}

// Me returns the authenticated user.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// validNonceActions is the set of actions a verification token can be
// requested for.
var validNonceActions = map[string]bool{
	service.ActionReorderSections: true,
	service.ActionImportSections:  true,
}

// IssueNonce returns a fresh action-scoped verification token for the
// authenticated caller.
func (h *Handlers) IssueNonce(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	action := r.URL.Query().Get("action")
	if !validNonceActions[action] {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	token, err := h.Nonces.Issue(action, u.ID)
	if err != nil {
		writeDomainError(w, err, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"action": action,
		"nonce":  token,
	})
}

// ImportMessage returns the pending import flash message and clears it.
// Responds 204 when no message is pending.
func (h *Handlers) ImportMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := h.Flash.Take(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to read import message")
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

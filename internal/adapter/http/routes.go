package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/onboardhq/manuald/internal/domain/user"
	"github.com/onboardhq/manuald/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", h.Login)
		r.Get("/auth/me", h.Me)

		// Verification tokens
		r.Get("/nonce", h.IssueNonce)

		// Manual sections (reads need any authenticated user)
		r.Get("/sections", h.ListSections)
		r.Get("/sections/export", h.ExportSections)
		r.Get("/sections/{id}", h.GetSection)

		// Section mutations require the manage capability. Reorder and
		// import do their own checks so the token is verified before the
		// capability, matching the documented failure order.
		manage := middleware.RequireCapability(user.CapManageManual)
		r.With(manage).Post("/sections", h.CreateSection)
		r.With(manage).Put("/sections/{id}", h.UpdateSection)
		r.With(manage).Delete("/sections/{id}", h.DeleteSection)

		r.Post("/sections/reorder", h.ReorderSections)
		r.Post("/import", h.Import)
		r.Get("/import/message", h.ImportMessage)
	})
}

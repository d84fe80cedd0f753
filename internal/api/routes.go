package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured
func NewRouter(h *Handler, jwtSecret []byte) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (no auth required)
		r.Get("/health", h.Health)

		// Protected routes (auth required)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(jwtSecret))

			// Project requests and drafts
			r.Post("/requests", h.CreateRequest)
			r.Get("/requests", h.ListRequests)
			r.Get("/requests/{id}", h.GetRequest)
			r.Patch("/requests/{id}", h.UpdateRequest)
			r.Delete("/requests/{id}", h.DeleteRequest)
			r.Post("/requests/{id}/publish", h.PublishRequest)
			r.Get("/requests/{id}/attachments/{name}/url", h.AttachmentURL)

			// Draft edit sessions
			r.Get("/drafts/{id}/session", h.GetSession)
			r.Post("/drafts/{id}/session/update", h.UpdateSession)
			r.Post("/drafts/{id}/session/undo", h.UndoSession)
			r.Post("/drafts/{id}/session/redo", h.RedoSession)
			r.Post("/drafts/{id}/session/reset", h.ResetSession)

			// Published project lifecycle
			r.Get("/projects/{id}/progress", h.GetProgress)
			r.Patch("/projects/{id}/progress", h.PatchProgress)
			r.Post("/projects/{id}/status", h.TransitionStatus)
			r.Post("/projects/{id}/roster", h.AddRosterMember)
			r.Delete("/projects/{id}/roster/{uid}", h.RemoveRosterMember)
			r.Get("/projects/{id}/audit", h.GetAudit)
		})
	})

	return r
}

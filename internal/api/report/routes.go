package report

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers EWYP report routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/ewyp-reports", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Post("/draft", h.SaveDraft)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/submit", h.SubmitByID)
		r.Post("/{id}/validate", h.Validate)
		r.Get("/{id}/document", h.GenerateDocument)
	})
}

package assistant

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers assistant routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/assistant", func(r chi.Router) {
		r.Post("/circumstances", h.GenerateCircumstancesQuestions)
		r.Post("/{conversationId}/message", h.HandleMessage)
		r.Get("/{conversationId}", h.GetConversation)
	})
}

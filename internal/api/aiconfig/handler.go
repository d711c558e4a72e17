package aiconfig

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/pkg/response"
)

// ProviderSource reports the AI provider fixed by deployment configuration.
type ProviderSource interface {
	ProviderName() string
}

type Handler struct {
	source ProviderSource
}

func NewHandler(source ProviderSource) *Handler {
	return &Handler{source: source}
}

// GetProvider handles GET /api/ai-config/provider. The provider is selected
// at deployment time; there is deliberately no endpoint to change it.
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.ProviderResponse{Provider: h.source.ProviderName()})
}

// RegisterRoutes registers AI config routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/api/ai-config/provider", h.GetProvider)
}

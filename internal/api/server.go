package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/zant/accident-backend/internal/api/aiconfig"
	assistantapi "github.com/zant/accident-backend/internal/api/assistant"
	"github.com/zant/accident-backend/internal/api/docs"
	"github.com/zant/accident-backend/internal/api/middleware"
	reportapi "github.com/zant/accident-backend/internal/api/report"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	assistantHandler *assistantapi.Handler,
	reportHandler *reportapi.Handler,
	aiConfigHandler *aiconfig.Handler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(180 * time.Second)) // AI calls can be slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	assistantapi.RegisterRoutes(r, assistantHandler)
	reportapi.RegisterRoutes(r, reportHandler)
	aiconfig.RegisterRoutes(r, aiConfigHandler)

	return r
}

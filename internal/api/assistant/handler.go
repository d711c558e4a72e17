package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/pkg/logger"
	"github.com/zant/accident-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase AssistantUsecase
}

func NewHandler(usecase AssistantUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// HandleMessage handles POST /api/assistant/{conversationId}/message - one conversation turn
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "HandleMessage")

	conversationID := chi.URLParam(r, "conversationId")
	if conversationID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "missing conversation id", nil)
		return
	}

	message, err := readMessage(r)
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "handling assistant message", zap.String("conversation_id", conversationID))

	turn, err := h.usecase.HandleMessage(ctx, conversationID, message)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, turn)
}

// readMessage accepts both a {"message": "..."} body and raw text, so the
// web UI and curl-style callers can share the endpoint.
func readMessage(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "{") {
		var req entity.HandleMessageRequest
		if err := json.Unmarshal(body, &req); err == nil {
			return req.Message, nil
		}
	}

	return trimmed, nil
}

// GetConversation handles GET /api/assistant/{conversationId} - conversation state
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetConversation")

	conversationID := chi.URLParam(r, "conversationId")

	state, err := h.usecase.GetConversation(ctx, conversationID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toConversationStateDTO(state))
}

// GenerateCircumstancesQuestions handles POST /api/assistant/circumstances - clarifying questions
func (h *Handler) GenerateCircumstancesQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateCircumstancesQuestions")

	var req entity.CircumstancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result := h.usecase.GenerateCircumstancesQuestions(ctx, req.AccidentDescription)

	h.respondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	response.JSON(w, status, data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrConversationNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

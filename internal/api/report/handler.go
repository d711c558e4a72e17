package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/pkg/formatter"
	"github.com/zant/accident-backend/internal/pkg/logger"
	"github.com/zant/accident-backend/internal/pkg/response"
	"github.com/zant/accident-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ReportUsecase
	validator *validator.Validator
}

func NewHandler(usecase ReportUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Submit handles POST /api/ewyp-reports - submit a notification
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitReport")

	var report entity.EWYPReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateSubmit(&report); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	created, err := h.usecase.Submit(ctx, &report)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

// SaveDraft handles POST /api/ewyp-reports/draft - store an incomplete notification
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveDraftReport")

	var report entity.EWYPReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateDraft(&report); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	created, err := h.usecase.SaveDraft(ctx, &report)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, created)
}

// SubmitByID handles POST /api/ewyp-reports/{id}/submit - promote a stored draft
func (h *Handler) SubmitByID(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SubmitReportByID")

	submitted, err := h.usecase.SubmitByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, submitted)
}

// Update handles PUT /api/ewyp-reports/{id} - replace a notification body
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateReport")

	reportID := chi.URLParam(r, "id")

	var report entity.EWYPReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	updated, err := h.usecase.Update(ctx, reportID, &report)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}

// Get handles GET /api/ewyp-reports/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetReport")

	report, err := h.usecase.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, report)
}

// List handles GET /api/ewyp-reports
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListReports")

	reports, err := h.usecase.List(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, reports)
}

// Delete handles DELETE /api/ewyp-reports/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteReport")

	if err := h.usecase.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// Validate handles POST /api/ewyp-reports/{id}/validate - completeness check
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ValidateReport")

	result, err := h.usecase.Validate(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GenerateDocument handles GET /api/ewyp-reports/{id}/document?format=pdf|docx -
// the official form rendered for download.
func (h *Handler) GenerateDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateDocument")

	format, err := h.validator.ParseDocumentFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid format", err)
		return
	}

	reportID := chi.URLParam(r, "id")
	report, err := h.usecase.Get(ctx, reportID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	factory := formatter.NewFactory()
	fmtr, err := factory.Create(format)
	if err != nil {
		h.respondError(ctx, w, http.StatusNotImplemented, "format not implemented", err)
		return
	}

	document, err := fmtr.Format(report)
	if err != nil {
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to render document", err)
		return
	}

	ctxzap.Info(ctx, "rendered notification document",
		zap.String("report_id", reportID),
		zap.String("format", string(format)))

	w.Header().Set("Content-Type", fmtr.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ewyp-%s%s\"", reportID, fmtr.FileExtension()))
	w.WriteHeader(http.StatusOK)
	w.Write(document)
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
	if errors.Is(err, entity.ErrReportNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

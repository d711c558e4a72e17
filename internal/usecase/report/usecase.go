package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/repository"
	"github.com/zant/accident-backend/internal/usecase/assistant"
	"go.uber.org/zap"
)

// ReportUsecase implements the EWYP notification lifecycle
type ReportUsecase struct {
	reportRepo repository.EWYPReportRepository
	calculator *assistant.Calculator
	logger     *zap.Logger
}

// NewUsecase creates a new report use case
func NewUsecase(
	reportRepo repository.EWYPReportRepository,
	calculator *assistant.Calculator,
	logger *zap.Logger,
) *ReportUsecase {
	return &ReportUsecase{
		reportRepo: reportRepo,
		calculator: calculator,
		logger:     logger,
	}
}

// Submit stores a new notification with status SUBMITTED.
func (uc *ReportUsecase) Submit(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	return uc.create(ctx, report, entity.ReportStatusSubmitted)
}

// SaveDraft stores a new notification with status DRAFT.
func (uc *ReportUsecase) SaveDraft(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	return uc.create(ctx, report, entity.ReportStatusDraft)
}

func (uc *ReportUsecase) create(ctx context.Context, report *entity.EWYPReport, status entity.ReportStatus) (*entity.EWYPReport, error) {
	report.ID = uuid.New().String()
	report.Status = status

	created, err := uc.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	ctxzap.Info(ctx, "stored accident notification",
		zap.String("report_id", created.ID),
		zap.String("status", string(created.Status)))

	return created, nil
}

// Update replaces the body of an existing notification. A previously
// submitted notification stays submitted; a draft can be promoted by
// submitting it through the update.
func (uc *ReportUsecase) Update(ctx context.Context, id string, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: report id %q", entity.ErrInvalidParameter, id)
	}

	existing, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	report.ID = id
	report.CreatedAt = existing.CreatedAt
	if existing.Status == entity.ReportStatusSubmitted {
		report.Status = entity.ReportStatusSubmitted
	} else if report.Status != entity.ReportStatusSubmitted {
		report.Status = entity.ReportStatusDraft
	}

	updated, err := uc.reportRepo.Update(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("update report: %w", err)
	}

	return updated, nil
}

// SubmitByID promotes a stored draft to SUBMITTED without touching its body.
// Submitting an already submitted notification is a no-op.
func (uc *ReportUsecase) SubmitByID(ctx context.Context, id string) (*entity.EWYPReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: report id %q", entity.ErrInvalidParameter, id)
	}

	existing, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	if existing.Status == entity.ReportStatusSubmitted {
		return existing, nil
	}

	existing.Status = entity.ReportStatusSubmitted
	updated, err := uc.reportRepo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("submit report: %w", err)
	}

	ctxzap.Info(ctx, "submitted stored notification", zap.String("report_id", id))

	return updated, nil
}

// Get returns a stored notification.
func (uc *ReportUsecase) Get(ctx context.Context, id string) (*entity.EWYPReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: report id %q", entity.ErrInvalidParameter, id)
	}

	report, err := uc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return report, nil
}

// List returns all stored notifications, newest first.
func (uc *ReportUsecase) List(ctx context.Context) ([]entity.EWYPReport, error) {
	reports, err := uc.reportRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Delete removes a stored notification.
func (uc *ReportUsecase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: report id %q", entity.ErrInvalidParameter, id)
	}

	if err := uc.reportRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}

	ctxzap.Info(ctx, "deleted accident notification", zap.String("report_id", id))
	return nil
}

// Validate checks a stored notification for completeness by projecting it
// onto the assistant's report shape and running the same presence predicates
// over the person and accident sections of the catalog.
func (uc *ReportUsecase) Validate(ctx context.Context, id string) (*entity.ValidationResult, error) {
	report, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	projection := projectReport(report)
	catalog := validationCatalog(uc.calculator.Catalog())
	missing := assistant.NewCalculator(catalog).MissingFields(projection)

	return &entity.ValidationResult{
		Valid:         len(missing) == 0,
		MissingFields: missing,
	}, nil
}

// validationCatalog keeps the catalog entries the EWYP form can express:
// the injured person and the accident description.
func validationCatalog(catalog []entity.RequiredField) []entity.RequiredField {
	kept := make([]entity.RequiredField, 0, len(catalog))
	for _, field := range catalog {
		if field.Section == entity.SectionPersonData || field.Section == entity.SectionAccidentData {
			kept = append(kept, field)
		}
	}
	return kept
}

package report

import (
	"context"

	"github.com/zant/accident-backend/internal/entity"
)

type ReportUsecase interface {
	Submit(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error)
	SaveDraft(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error)
	SubmitByID(ctx context.Context, id string) (*entity.EWYPReport, error)
	Update(ctx context.Context, id string, report *entity.EWYPReport) (*entity.EWYPReport, error)
	Get(ctx context.Context, id string) (*entity.EWYPReport, error)
	List(ctx context.Context) ([]entity.EWYPReport, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, id string) (*entity.ValidationResult, error)
}

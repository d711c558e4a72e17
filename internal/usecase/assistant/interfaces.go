package assistant

import (
	"context"

	"github.com/zant/accident-backend/internal/entity"
)

type AIClient interface {
	ExtractReportData(ctx context.Context, state *entity.ConversationState, userMessage string, requiredFields []entity.RequiredField) *entity.ExtractionResult
	GenerateCircumstancesQuestions(ctx context.Context, accidentDescription string) *entity.CircumstancesResult
	ProviderName() string
}

package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/repository"
	"go.uber.org/zap"
)

// emptyDescriptionError is surfaced when question generation is asked to
// work on a blank description.
const emptyDescriptionError = "Brak opisu zdarzenia!"

// AssistantUsecase implements the conversational report-filling logic
type AssistantUsecase struct {
	conversationRepo repository.ConversationRepository
	aiClient         AIClient
	calculator       *Calculator
	logger           *zap.Logger
}

// NewUsecase creates a new assistant use case
func NewUsecase(
	conversationRepo repository.ConversationRepository,
	aiClient AIClient,
	calculator *Calculator,
	logger *zap.Logger,
) *AssistantUsecase {
	return &AssistantUsecase{
		conversationRepo: conversationRepo,
		aiClient:         aiClient,
		calculator:       calculator,
		logger:           logger,
	}
}

// HandleMessage runs one conversation turn: append the user message, extract
// report data, merge it into the draft, recompute the missing fields and
// persist the whole state. Extraction itself never fails; the only error
// paths here are persistence.
func (uc *AssistantUsecase) HandleMessage(ctx context.Context, conversationID, message string) (*entity.AssistantTurn, error) {
	state, err := uc.conversationRepo.LoadOrCreate(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}

	state.History = append(state.History, entity.Message{
		Role:    entity.MessageRoleUser,
		Content: message,
	})

	extraction := uc.aiClient.ExtractReportData(ctx, state, message, uc.calculator.Catalog())

	if state.Report == nil {
		state.Report = &entity.AccidentReport{}
	}
	merged, rejected := mergeExtractedFields(state.Report, extraction.ExtractedFields)
	state.Report = merged
	if len(rejected) > 0 {
		ctxzap.Warn(ctx, "dropped unusable extracted slots",
			zap.String("conversation_id", conversationID),
			zap.Strings("slots", rejected))
	}

	missing, progress := uc.calculator.Evaluate(state.Report)
	state.MissingFields = missing
	state.CompletionProgress = progress

	state.History = append(state.History, entity.Message{
		Role:    entity.MessageRoleAssistant,
		Content: extraction.SummaryForUser,
	})

	if err := uc.conversationRepo.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	ctxzap.Info(ctx, "handled assistant message",
		zap.String("conversation_id", conversationID),
		zap.Int("missing_fields", len(missing)),
		zap.Float64("progress", progress))

	return &entity.AssistantTurn{
		Response:           extraction.SummaryForUser,
		FollowUpQuestions:  extraction.FollowUpQuestions,
		MissingFields:      missing,
		CompletionProgress: progress,
	}, nil
}

// GetConversation returns the persisted state of an existing conversation.
func (uc *AssistantUsecase) GetConversation(ctx context.Context, conversationID string) (*entity.ConversationState, error) {
	state, err := uc.conversationRepo.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return state, nil
}

// GenerateCircumstancesQuestions proposes clarifying questions for a
// free-text accident description. Failures are carried in the result body.
func (uc *AssistantUsecase) GenerateCircumstancesQuestions(ctx context.Context, accidentDescription string) *entity.CircumstancesResult {
	if strings.TrimSpace(accidentDescription) == "" {
		return &entity.CircumstancesResult{
			Questions: []entity.CircumstancesQuestion{},
			Error:     emptyDescriptionError,
		}
	}

	return uc.aiClient.GenerateCircumstancesQuestions(ctx, accidentDescription)
}

// ProviderName reports the deployment-selected AI provider.
func (uc *AssistantUsecase) ProviderName() string {
	return uc.aiClient.ProviderName()
}

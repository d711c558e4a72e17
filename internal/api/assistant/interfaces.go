package assistant

import (
	"context"

	"github.com/zant/accident-backend/internal/entity"
)

type AssistantUsecase interface {
	HandleMessage(ctx context.Context, conversationID, message string) (*entity.AssistantTurn, error)
	GetConversation(ctx context.Context, conversationID string) (*entity.ConversationState, error)
	GenerateCircumstancesQuestions(ctx context.Context, accidentDescription string) *entity.CircumstancesResult
	ProviderName() string
}

package bot

import (
	"context"

	"github.com/zant/accident-backend/internal/entity"
)

// AssistantUsecase drives the accident-report conversation for a chat.
type AssistantUsecase interface {
	HandleMessage(ctx context.Context, conversationID, message string) (*entity.AssistantTurn, error)
	GetConversation(ctx context.Context, conversationID string) (*entity.ConversationState, error)
}

package telegram

import (
	"context"
	"fmt"

	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/telegram/bot"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	assistantUC bot.AssistantUsecase,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, assistantUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

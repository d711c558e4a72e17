package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/entity"
	"github.com/zant/accident-backend/internal/telegram/middleware"
	"github.com/zant/accident-backend/internal/telegram/render"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	assistant   AssistantUsecase
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	assistantUC AssistantUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	bot := &Bot{
		api:       api,
		cfg:       cfg,
		assistant: assistantUC,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(cfg.RateLimitPerMinute, logger, api)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}

	b.handleMessage(ctx, update.Message)
}

// handleCommand handles /start and /status
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.send(ctx, message.Chat.ID, render.MsgWelcome)
	case "status":
		state, err := b.assistant.GetConversation(ctx, conversationID(message.Chat.ID))
		if err != nil {
			if errors.Is(err, entity.ErrConversationNotFound) {
				b.send(ctx, message.Chat.ID, render.MsgNoConversation)
				return
			}
			ctxzap.Error(ctx, "failed to load conversation for /status",
				zap.Error(err),
				zap.Int64("chat_id", message.Chat.ID),
			)
			b.send(ctx, message.Chat.ID, render.ErrGeneric)
			return
		}
		b.send(ctx, message.Chat.ID, render.Status(state))
	default:
		b.send(ctx, message.Chat.ID, render.MsgWelcome)
	}
}

// handleMessage forwards a free-text message to the assistant
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Text == "" {
		b.send(ctx, message.Chat.ID, render.MsgNoConversation)
		return
	}

	b.sendTyping(ctx, message.Chat.ID)

	turn, err := b.assistant.HandleMessage(ctx, conversationID(message.Chat.ID), message.Text)
	if err != nil {
		ctxzap.Error(ctx, "assistant failed to handle message",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID),
		)
		b.send(ctx, message.Chat.ID, render.ErrGeneric)
		return
	}

	b.send(ctx, message.Chat.ID, render.Turn(turn))
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send telegram message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendTyping shows the typing indicator while the AI call is in flight
func (b *Bot) sendTyping(ctx context.Context, chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := b.api.Request(action); err != nil {
		ctxzap.Warn(ctx, "failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// conversationID maps a Telegram chat onto a conversation key shared with
// the HTTP API state store.
func conversationID(chatID int64) string {
	return "tg-" + strconv.FormatInt(chatID, 10)
}

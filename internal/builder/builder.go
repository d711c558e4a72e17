package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/zant/accident-backend/internal/api"
	"github.com/zant/accident-backend/internal/api/aiconfig"
	assistantapi "github.com/zant/accident-backend/internal/api/assistant"
	reportapi "github.com/zant/accident-backend/internal/api/report"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zant/accident-backend/internal/config"
	"github.com/zant/accident-backend/internal/integration/ai"
	"github.com/zant/accident-backend/internal/pkg/validator"
	"github.com/zant/accident-backend/internal/repository"
	"github.com/zant/accident-backend/internal/telegram"
	"github.com/zant/accident-backend/internal/usecase/assistant"
	"github.com/zant/accident-backend/internal/usecase/report"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("ai_provider", cfg.AIProvider),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	assistantUC, reportUC, err := buildUsecases(cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Setup API handlers
	assistantHandler := assistantapi.NewHandler(assistantUC)
	reportHandler := reportapi.NewHandler(reportUC, validator.NewValidator())
	aiConfigHandler := aiconfig.NewHandler(assistantUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(assistantHandler, reportHandler, aiConfigHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. WriteTimeout must outlast a slow AI call.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	assistantUC, _, err := buildUsecases(cfg, db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	// Initialize Telegram bot
	bot, err := telegram.NewBot(&cfg.TelegramCfg, assistantUC, logger)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

// buildUsecases wires repositories, the AI client and both use cases. The
// HTTP server and the Telegram bot share this stack.
func buildUsecases(cfg *config.Config, db *pgxpool.Pool, logger *zap.Logger) (*assistant.AssistantUsecase, *report.ReportUsecase, error) {
	// Initialize repositories
	conversationRepo := repository.NewConversationCache(
		repository.NewConversationPostgres(db),
		cfg.StateCache.TTL,
		cfg.StateCache.CleanupInterval,
	)
	reportRepo := repository.NewEWYPPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize AI provider (with mock support)
	var provider ai.Provider
	if cfg.EnableMocks {
		logger.Info("Using mock AI provider")
		provider = ai.NewMockProvider(logger)
	} else {
		p, err := ai.NewProvider(cfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize AI provider: %w", err)
		}
		provider = p
		logger.Info("AI provider initialized",
			zap.String("provider", provider.Name()),
			zap.Bool("configured", provider.Configured()),
		)
	}
	aiClient := ai.NewClient(provider, logger)

	// Initialize use cases
	calculator := assistant.NewCalculator(cfg.RequiredFields)
	assistantUC := assistant.NewUsecase(conversationRepo, aiClient, calculator, logger)
	reportUC := report.NewUsecase(reportRepo, calculator, logger)
	logger.Info("Use cases initialized")

	return assistantUC, reportUC, nil
}

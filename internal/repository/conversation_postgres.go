package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zant/accident-backend/internal/entity"
)

// ConversationRepository defines the interface for conversation state persistence
type ConversationRepository interface {
	LoadOrCreate(ctx context.Context, conversationID string) (*entity.ConversationState, error)
	Get(ctx context.Context, conversationID string) (*entity.ConversationState, error)
	Save(ctx context.Context, state *entity.ConversationState) error
}

var _ ConversationRepository = &ConversationPostgres{}

// ConversationPostgres implements ConversationRepository using PostgreSQL.
// The whole state travels as one JSONB document; the conversation ID is the
// natural key, so saves are plain upserts.
type ConversationPostgres struct {
	db *pgxpool.Pool
}

func NewConversationPostgres(db *pgxpool.Pool) *ConversationPostgres {
	return &ConversationPostgres{db: db}
}

func (r *ConversationPostgres) LoadOrCreate(ctx context.Context, conversationID string) (*entity.ConversationState, error) {
	state, err := r.Get(ctx, conversationID)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, entity.ErrConversationNotFound) {
		return nil, err
	}

	fresh := entity.NewConversationState(conversationID)
	fresh.CreatedAt = time.Now().UTC()
	fresh.UpdatedAt = fresh.CreatedAt
	return fresh, nil
}

func (r *ConversationPostgres) Get(ctx context.Context, conversationID string) (*entity.ConversationState, error) {
	query := `
		SELECT state, created_at, updated_at
		FROM conversations
		WHERE conversation_id = $1`

	var (
		stateJSON            []byte
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, conversationID).Scan(&stateJSON, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrConversationNotFound
		}
		return nil, fmt.Errorf("get conversation %s: %w", conversationID, err)
	}

	var state entity.ConversationState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", conversationID, err)
	}

	state.ConversationID = conversationID
	state.CreatedAt = createdAt
	state.UpdatedAt = updatedAt
	return &state, nil
}

func (r *ConversationPostgres) Save(ctx context.Context, state *entity.ConversationState) error {
	query := `
		INSERT INTO conversations (conversation_id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (conversation_id)
		DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	state.UpdatedAt = time.Now().UTC()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = state.UpdatedAt
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", state.ConversationID, err)
	}

	if _, err := r.db.Exec(ctx, query, state.ConversationID, stateJSON, state.CreatedAt, state.UpdatedAt); err != nil {
		return fmt.Errorf("save conversation %s: %w", state.ConversationID, err)
	}

	return nil
}

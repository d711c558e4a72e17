package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/zant/accident-backend/internal/entity"
)

var _ ConversationRepository = &ConversationCache{}

// ConversationCache is a read-through cache in front of a
// ConversationRepository. Saves write through to the store and refresh the
// cached copy, so a conversation served from cache is never staler than the
// last successful save of this process. Cache entries are isolated copies:
// callers mutate their own state, and the cache only picks up mutations that
// landed in the store.
type ConversationCache struct {
	inner ConversationRepository
	cache *gocache.Cache
}

func NewConversationCache(inner ConversationRepository, ttl, cleanupInterval time.Duration) *ConversationCache {
	return &ConversationCache{
		inner: inner,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// LoadOrCreate resolves through the cache, but a freshly constructed state is
// not cached until its first save lands in the store.
func (r *ConversationCache) LoadOrCreate(ctx context.Context, conversationID string) (*entity.ConversationState, error) {
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

func (r *ConversationCache) Get(ctx context.Context, conversationID string) (*entity.ConversationState, error) {
	if cached, found := r.cache.Get(conversationID); found {
		return cloneState(cached.(*entity.ConversationState))
	}

	state, err := r.inner.Get(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	r.cacheCopy(state)
	return state, nil
}

func (r *ConversationCache) Save(ctx context.Context, state *entity.ConversationState) error {
	if err := r.inner.Save(ctx, state); err != nil {
		return err
	}

	r.cacheCopy(state)
	return nil
}

func (r *ConversationCache) cacheCopy(state *entity.ConversationState) {
	if clone, err := cloneState(state); err == nil {
		r.cache.SetDefault(state.ConversationID, clone)
	}
}

// cloneState deep-copies a conversation state. The state is exactly the
// shape persisted as JSONB, so a JSON round-trip is a faithful copy.
func cloneState(state *entity.ConversationState) (*entity.ConversationState, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	clone := &entity.ConversationState{}
	if err := json.Unmarshal(raw, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

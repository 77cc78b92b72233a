package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/constants"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionNotFound session不存在或已過期
	ErrSessionNotFound = errors.New("session not found")
)

type ISessionRepository interface {
	Create(ctx context.Context, sessionID string, identity *model.Identity) error
	Get(ctx context.Context, sessionID string) (*model.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

// SessionRepo server-side session儲存
// session:{id} -> identity JSON，TTL到期自動登出
type SessionRepo struct {
	SessionCache *redis.Client
}

func NewSessionRepo(sessionCache *redis.Client) *SessionRepo {
	return &SessionRepo{SessionCache: sessionCache}
}

func generateSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (r *SessionRepo) Create(ctx context.Context, sessionID string, identity *model.Identity) error {
	identityJSON, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal identity: %w", err)
	}

	err = r.SessionCache.Set(ctx, generateSessionKey(sessionID), identityJSON, constants.SessionDuration).Err()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *SessionRepo) Get(ctx context.Context, sessionID string) (*model.Identity, error) {
	identityJSON, err := r.SessionCache.Get(ctx, generateSessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal([]byte(identityJSON), &identity); err != nil {
		return nil, fmt.Errorf("failed to unmarshal identity: %w", err)
	}
	return &identity, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	err := r.SessionCache.Del(ctx, generateSessionKey(sessionID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ ISessionRepository = (*SessionRepo)(nil)

package service

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/google/uuid"
)

type ISessionService interface {
	CreateSession(ctx context.Context, identity *model.Identity) (string, error)
	GetIdentity(ctx context.Context, sessionID string) (*model.Identity, error)
	DestroySession(ctx context.Context, sessionID string) error
}

// SessionService server-side session管理
// session id為uuid，identity存redis，cookie只帶id
type SessionService struct {
	sessionRepo redis_repo.ISessionRepository
	cartRepo    redis_repo.ICartRepository
}

func NewSessionService(sessionRepo redis_repo.ISessionRepository, cartRepo redis_repo.ICartRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, identity *model.Identity) (string, error) {
	sessionID := uuid.New().String()
	if err := s.sessionRepo.Create(ctx, sessionID, identity); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *SessionService) GetIdentity(ctx context.Context, sessionID string) (*model.Identity, error) {
	return s.sessionRepo.Get(ctx, sessionID)
}

// DestroySession 登出，session與購物車一併銷毀
func (s *SessionService) DestroySession(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

var _ ISessionService = (*SessionService)(nil)

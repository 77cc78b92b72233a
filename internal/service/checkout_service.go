package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/keylock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyCartCommit 空車或Absent購物車不可結帳
	ErrEmptyCartCommit = errors.New("commit attempted with no cart lines")
	// ErrIdentityMissing 結帳需要完整身份 (username與email非空)
	ErrIdentityMissing = errors.New("identity is missing or incomplete")
	// ErrForbiddenRole admin/fulfillment不可結帳
	ErrForbiddenRole = errors.New("role is not allowed to checkout")
)

type ICheckoutService interface {
	Commit(ctx context.Context, sessionID string, identity *model.Identity, address string) ([]model.Order, error)
}

// CheckoutService 訂單commit
// 一筆CartLine轉一筆Order，全部寫入包在單一db transaction內:
// 要嘛全部成立要嘛全部rollback，不會留下部分訂單 (retry不會重複下單)
// transaction成功後才清空購物車
type CheckoutService struct {
	cartRepo      redis_repo.ICartRepository
	orderRepo     db.IOrderRepository
	orderProducer producer.IOrderProducer // optional，nil表示不發事件
	locks         *keylock.KeyedMutex
	logger        *zerolog.Logger
}

func NewCheckoutService(
	cartRepo redis_repo.ICartRepository,
	orderRepo db.IOrderRepository,
	orderProducer producer.IOrderProducer,
	locks *keylock.KeyedMutex,
	logger *zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		orderProducer: orderProducer,
		locks:         locks,
		logger:        logger,
	}
}

// Commit 將Populated購物車轉為持久化訂單並清空購物車
// deliveryAddress為預先組好的自由文字，這裡不驗證其結構
func (s *CheckoutService) Commit(ctx context.Context, sessionID string, identity *model.Identity, address string) ([]model.Order, error) {
	if identity == nil || identity.Username == "" || identity.Email == "" {
		return nil, ErrIdentityMissing
	}
	if identity.AccessLevel == model.AccessLevelAdmin || identity.AccessLevel == model.AccessLevelFulfillment {
		return nil, ErrForbiddenRole
	}

	// commit與cart mutation共用同一把session鎖，避免結帳途中被加車
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return nil, ErrEmptyCartCommit
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCartCommit
	}

	now := time.Now().UTC()
	orders := make([]model.Order, 0, cart.Len())
	for line := range cart.Lines() {
		orders = append(orders, model.Order{
			OrderID:     uuid.New(),
			ProductCode: line.Code,
			ProductName: line.Name,
			Username:    identity.Username,
			Email:       identity.Email,
			Price:       line.Price,
			Quantity:    line.Quantity,
			Address:     address,
			OrderDate:   now,
		})
	}

	// 單一transaction，部分失敗整批rollback，購物車維持原狀
	if err := s.orderRepo.CreateOrdersTx(ctx, orders); err != nil {
		return nil, fmt.Errorf("failed to commit orders: %w", err)
	}

	// Populated -> Absent
	if err := s.cartRepo.Delete(ctx, sessionID); err != nil {
		// 訂單已成立但購物車沒清掉，retry結帳會重複下單，必須浮出給呼叫端
		return orders, fmt.Errorf("orders committed but failed to clear cart: %w", err)
	}

	s.publishCommitted(sessionID, identity.Username, now, orders)

	return orders, nil
}

// publishCommitted 發送order.committed事件，best-effort
// 事件失敗只記log，不影響已成立的訂單
func (s *CheckoutService) publishCommitted(sessionID, username string, committedAt time.Time, orders []model.Order) {
	if s.orderProducer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := s.orderProducer.OrderCommitted(ctx, &producer.OrderCommittedPayload{
		SessionID:   sessionID,
		Username:    username,
		CommittedAt: committedAt,
		Orders:      orders,
	})
	if err != nil && s.logger != nil {
		s.logger.Error().
			Err(err).
			Str("username", username).
			Int("order_count", len(orders)).
			Msg("failed to publish order committed event")
	}
}

var _ ICheckoutService = (*CheckoutService)(nil)

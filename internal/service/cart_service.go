package service

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopcart/internal/pkg/keylock"
)

var (
	// ErrInvalidQuantity 數量非正整數
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrCartNotFound 購物車不存在 (Absent)
	ErrCartNotFound = errors.New("cart is not exist")
)

type ICartService interface {
	AddItem(ctx context.Context, sessionID, code string, quantity int) error
	RemoveItem(ctx context.Context, sessionID, code string) error
	Clear(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	View(ctx context.Context, sessionID string) (iter.Seq[model.CartLine], int, error)
}

// ProductFinder Cart Engine對catalog的唯一依賴
// 回傳的商品視為唯讀快照來源
type ProductFinder interface {
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
}

// CartService 核心購物車引擎
// 單一session的read-modify-write以session id為key的鎖保護，
// 整個 讀cart -> 計算 -> 覆寫cart 為單一critical section
type CartService struct {
	cartRepo redis_repo.ICartRepository
	products ProductFinder
	locks    *keylock.KeyedMutex
}

func NewCartService(cartRepo redis_repo.ICartRepository, products ProductFinder, locks *keylock.KeyedMutex) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		products: products,
		locks:    locks,
	}
}

// AddItem 合併商品進session購物車
// 失敗時 (數量不合法、商品不存在、儲存失敗) 購物車維持呼叫前狀態
func (s *CartService) AddItem(ctx context.Context, sessionID, code string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	// 商品查詢不在critical section內，失敗不碰購物車
	product, err := s.products.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to find product %s: %w", code, err)
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, redis_repo.ErrCartNotFound) {
			return err
		}
		// Absent -> Populated，首次加入建立新車
		cart = &model.Cart{}
	}

	cart.Upsert(product, quantity)

	// 整車覆寫
	return s.cartRepo.Set(ctx, sessionID, cart)
}

// RemoveItem 移除商品項目
// code不存在於車內時為no-op，購物車不存在回傳ErrCartNotFound
// 移除後若歸零，整車刪除回到Absent狀態
func (s *CartService) RemoveItem(ctx context.Context, sessionID, code string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return ErrCartNotFound
		}
		return err
	}

	cart.Remove(code)

	if cart.IsEmpty() {
		// 空車與從未建立的車必須不可區分
		return s.cartRepo.Delete(ctx, sessionID)
	}
	return s.cartRepo.Set(ctx, sessionID, cart)
}

// Clear 無條件清空購物車，冪等
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	return s.cartRepo.Delete(ctx, sessionID)
}

// Get 取得購物車現況，Absent回傳nil cart
func (s *CartService) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cart, err := s.cartRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, redis_repo.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cart, nil
}

// View 依加入順序走訪購物車項目，純讀取
// Absent購物車回傳空sequence與0
func (s *CartService) View(ctx context.Context, sessionID string) (iter.Seq[model.CartLine], int, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if cart == nil {
		empty := &model.Cart{}
		return empty.Lines(), 0, nil
	}
	return cart.Lines(), cart.Len(), nil
}

var _ ICartService = (*CartService)(nil)

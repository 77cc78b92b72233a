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
	// ErrCartNotFound 購物車不存在 (Absent狀態)
	ErrCartNotFound = errors.New("cart not found")
)

type ICartRepository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Set(ctx context.Context, sessionID string, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// CartRepo session購物車儲存
// 整車JSON覆寫，不做部分更新，每次Set都會刷新TTL
type CartRepo struct {
	CartCache *redis.Client
}

func NewCartRepo(cartCache *redis.Client) *CartRepo {
	return &CartRepo{CartCache: cartCache}
}

func generateCartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Get 取得session購物車
// key不存在回傳ErrCartNotFound，呼叫端據此判斷Absent狀態
func (r *CartRepo) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	cartJSON, err := r.CartCache.Get(ctx, generateCartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(cartJSON), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return &cart, nil
}

// Set 整車覆寫
func (r *CartRepo) Set(ctx context.Context, sessionID string, cart *model.Cart) error {
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	err = r.CartCache.Set(ctx, generateCartKey(sessionID), cartJSON, constants.CartDuration).Err()
	if err != nil {
		return fmt.Errorf("failed to set cart: %w", err)
	}
	return nil
}

// Delete 刪除整車，使購物車回到Absent狀態
// key不存在不視為錯誤
func (r *CartRepo) Delete(ctx context.Context, sessionID string) error {
	err := r.CartCache.Del(ctx, generateCartKey(sessionID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

var _ ICartRepository = (*CartRepo)(nil)

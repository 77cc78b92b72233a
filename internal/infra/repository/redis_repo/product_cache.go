package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss 快取未命中
	ErrCacheMiss = errors.New("cache miss")
)

const productCacheTTL = 10 * time.Minute

type IProductCache interface {
	Get(ctx context.Context, code string) (*model.Product, error)
	Set(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, code string) error
}

// ProductCache 商品讀取快取
// 快取key以code為準，first-match結果進快取
// 後台商品異動時由service負責invalidate
type ProductCache struct {
	cache *redis.Client
}

func NewProductCache(cache *redis.Client) *ProductCache {
	return &ProductCache{cache: cache}
}

func generateProductKey(code string) string {
	return fmt.Sprintf("product:code:%s", code)
}

func (r *ProductCache) Get(ctx context.Context, code string) (*model.Product, error) {
	productJSON, err := r.cache.Get(ctx, generateProductKey(code)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product cache: %w", err)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(productJSON), &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}
	return &product, nil
}

func (r *ProductCache) Set(ctx context.Context, product *model.Product) error {
	productJSON, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}
	return r.cache.Set(ctx, generateProductKey(product.Code), productJSON, productCacheTTL).Err()
}

func (r *ProductCache) Delete(ctx context.Context, code string) error {
	return r.cache.Del(ctx, generateProductKey(code)).Err()
}

var _ IProductCache = (*ProductCache)(nil)

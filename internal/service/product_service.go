package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidPrice 價格字串不合法或非正數
	ErrInvalidPrice = errors.New("price must be a positive decimal")
	// ErrMissingProductFields 必填欄位缺漏
	ErrMissingProductFields = errors.New("one of the mandatory product fields is missing")
)

type IProductService interface {
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, name, brand, code, price, image string) (*model.Product, error)
	UpdateProduct(ctx context.Context, code string, name, brand, price, image *string) (*model.Product, error)
	DeleteProduct(ctx context.Context, code string) error
}

// ProductService catalog商品服務
// 讀取走redis快取，同code併發miss以singleflight收斂成單次db查詢
// 後台寫入後invalidate快取
type ProductService struct {
	productRepo  db.IProductRepository
	productCache redis_repo.IProductCache
	sfg          singleflight.Group
	logger       *zerolog.Logger
}

func NewProductService(productRepo db.IProductRepository, productCache redis_repo.IProductCache, logger *zerolog.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		productCache: productCache,
		logger:       logger,
	}
}

// GetProductByCode 依code取商品，first-match
// code在storage層不保證唯一，回傳product_id最小的一筆
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	v, err, _ := s.sfg.Do(code, func() (interface{}, error) {
		if s.productCache != nil {
			product, err := s.productCache.Get(ctx, code)
			if err == nil {
				return product, nil
			}
			if !errors.Is(err, redis_repo.ErrCacheMiss) && s.logger != nil {
				s.logger.Warn().Err(err).Str("code", code).Msg("product cache get error")
			}
		}

		product, err := s.productRepo.GetProductByCode(ctx, code)
		if err != nil {
			if errors.Is(err, db.ErrProductNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}

		if s.productCache != nil {
			if err := s.productCache.Set(ctx, product); err != nil && s.logger != nil {
				s.logger.Warn().Err(err).Str("code", code).Msg("product cache set error")
			}
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Product), nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.GetAllProducts(ctx)
}

// CreateProduct 新增商品
// price為十進位字串 (ex: "19.99")，換算為最小貨幣單位整數儲存
func (s *ProductService) CreateProduct(ctx context.Context, name, brand, code, price, image string) (*model.Product, error) {
	if name == "" || brand == "" || code == "" || price == "" || image == "" {
		return nil, ErrMissingProductFields
	}

	unitPrice, err := parsePrice(price)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Code:  code,
		Name:  name,
		Brand: brand,
		Price: unitPrice,
		Image: image,
	}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidate(ctx, code)
	return product, nil
}

// UpdateProduct 更新first-match商品，nil欄位表示不變更
// code以外至少要有一個欄位
func (s *ProductService) UpdateProduct(ctx context.Context, code string, name, brand, price, image *string) (*model.Product, error) {
	if code == "" {
		return nil, ErrMissingProductFields
	}
	if name == nil && brand == nil && price == nil && image == nil {
		return nil, ErrMissingProductFields
	}

	product, err := s.productRepo.GetProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if name != nil {
		product.Name = *name
	}
	if brand != nil {
		product.Brand = *brand
	}
	if image != nil {
		product.Image = *image
	}
	if price != nil {
		unitPrice, err := parsePrice(*price)
		if err != nil {
			return nil, err
		}
		product.Price = unitPrice
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.invalidate(ctx, code)
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, code string) error {
	if code == "" {
		return ErrMissingProductFields
	}

	err := s.productRepo.DeleteProductByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.invalidate(ctx, code)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, code string) {
	if s.productCache == nil {
		return
	}
	if err := s.productCache.Delete(ctx, code); err != nil && s.logger != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("product cache invalidate error")
	}
}

// parsePrice 十進位字串轉最小貨幣單位
// "19.99" -> 1999，超過兩位小數視為不合法
func parsePrice(price string) (int64, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if d.IsNegative() || d.IsZero() {
		return 0, ErrInvalidPrice
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, ErrInvalidPrice
	}
	return cents.IntPart(), nil
}

var _ IProductService = (*ProductService)(nil)
var _ ProductFinder = (*ProductService)(nil)

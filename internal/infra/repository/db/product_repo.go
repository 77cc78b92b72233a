package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
)

type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProductByCode(ctx context.Context, code string) error
}

/*
code不是unique key，storage層容忍碰撞
所有by code查詢一律依product_id升冪取第一筆 (first-match)
*/
type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// GetProductByCode 依code取商品，first-match
func (s *ProductRepo) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Where("code = ?", code).
		Order("product_id asc").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *ProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Order("product_id asc").Find(&products).Error
	return products, err
}

// UpdateProduct 更新first-match商品
func (s *ProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	existing, err := s.GetProductByCode(ctx, product.Code)
	if err != nil {
		return err
	}
	product.ProductID = existing.ProductID
	return s.db.WithContext(ctx).Save(product).Error
}

// DeleteProductByCode 軟刪除first-match商品
func (s *ProductRepo) DeleteProductByCode(ctx context.Context, code string) error {
	existing, err := s.GetProductByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Product{}, existing.ProductID).Error
}

var _ IProductRepository = (*ProductRepo)(nil)

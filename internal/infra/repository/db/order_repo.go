package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"gorm.io/gorm"
)

type IOrderRepository interface {
	CreateOrdersTx(ctx context.Context, orders []model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByUsername(ctx context.Context, username string) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
}

// 訂單寫入後不可變更，只提供Create與查詢
type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateOrdersTx 於單一transaction內寫入多筆訂單
// 全部成功或全部rollback，不會留下部分訂單
func (s *OrderRepo) CreateOrdersTx(ctx context.Context, orders []model.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).First(&order, "order_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) GetOrdersByUsername(ctx context.Context, username string) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Where("username = ?", username).Order("order_date asc").Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Order("order_date asc").Find(&orders).Error
	return orders, err
}

var _ IOrderRepository = (*OrderRepo)(nil)

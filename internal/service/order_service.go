package service

import (
	"context"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/infra/repository/db"
)

type IOrderService interface {
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrdersByUsername(ctx context.Context, username string) ([]model.Order, error)
}

// OrderService 訂單查詢，供fulfillment出貨視圖使用
// 訂單寫入只走CheckoutService.Commit，這裡純讀取
type OrderService struct {
	orderRepo db.IOrderRepository
}

func NewOrderService(orderRepo db.IOrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

func (o *OrderService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return o.orderRepo.GetAllOrders(ctx)
}

func (o *OrderService) GetOrdersByUsername(ctx context.Context, username string) ([]model.Order, error) {
	return o.orderRepo.GetOrdersByUsername(ctx, username)
}

var _ IOrderService = (*OrderService)(nil)

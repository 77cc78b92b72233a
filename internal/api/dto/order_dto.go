package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
)

type OrderDTO struct {
	OrderID     string    `json:"order_id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	Address     string    `json:"address"`
	OrderDate   time.Time `json:"order_date"`
}

func ConvertOrderToDTO(order *model.Order) OrderDTO {
	return OrderDTO{
		OrderID:     order.OrderID.String(),
		ProductCode: order.ProductCode,
		ProductName: order.ProductName,
		Username:    order.Username,
		Email:       order.Email,
		Price:       order.Price,
		Quantity:    order.Quantity,
		Address:     order.Address,
		OrderDate:   order.OrderDate,
	}
}

func ConvertOrdersToDTO(orders []model.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, ConvertOrderToDTO(&orders[i]))
	}
	return dtos
}

package dto

import "github.com/RoyceAzure/lab/shopcart/internal/domain/model"

type CartLineDTO struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Brand      string `json:"brand"`
	Image      string `json:"image"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"total_price"`
}

type CartDTO struct {
	Items         []CartLineDTO `json:"items"`
	ItemCount     int           `json:"item_count"`
	TotalQuantity int           `json:"total_quantity"`
	TotalPrice    int64         `json:"total_price"`
}

// ConvertCartToDTO Absent購物車回傳空DTO
func ConvertCartToDTO(cart *model.Cart) CartDTO {
	dto := CartDTO{Items: []CartLineDTO{}}
	if cart == nil {
		return dto
	}

	for line := range cart.Lines() {
		dto.Items = append(dto.Items, CartLineDTO{
			Code:       line.Code,
			Name:       line.Name,
			Brand:      line.Brand,
			Image:      line.Image,
			Price:      line.Price,
			Quantity:   line.Quantity,
			TotalPrice: line.TotalPrice,
		})
	}
	dto.ItemCount = cart.Len()
	dto.TotalQuantity = cart.TotalQuantity
	dto.TotalPrice = cart.TotalPrice
	return dto
}

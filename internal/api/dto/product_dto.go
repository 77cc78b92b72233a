package dto

import "github.com/RoyceAzure/lab/shopcart/internal/domain/model"

type ProductDTO struct {
	ProductID uint   `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
}

func ConvertProductToDTO(product *model.Product) ProductDTO {
	return ProductDTO{
		ProductID: product.ProductID,
		Code:      product.Code,
		Name:      product.Name,
		Brand:     product.Brand,
		Price:     product.Price,
		Image:     product.Image,
	}
}

func ConvertProductsToDTO(products []model.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, ConvertProductToDTO(&products[i]))
	}
	return dtos
}

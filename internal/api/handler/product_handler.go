package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

// Shop 商店商品列表
func (h *ProductHandler) Shop(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load products")
		return
	}
	api.SuccessJSON(w, dto.ConvertProductsToDTO(products), "")
}

// AddProduct 後台新增商品
// form: name, brand, code, price (十進位字串), image
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	product, err := h.productService.CreateProduct(
		r.Context(),
		r.FormValue("name"),
		r.FormValue("brand"),
		r.FormValue("code"),
		r.FormValue("price"),
		r.FormValue("image"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProductFields), errors.Is(err, service.ErrInvalidPrice):
			api.ErrorJSON(w, http.StatusBadRequest, err, "one of the mandatory fields not supplied")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to create product")
		}
		return
	}

	api.SuccessJSON(w, dto.ConvertProductToDTO(product), fmt.Sprintf("data for product with code %s has been added", product.Code))
}

// UpdateProduct 後台更新商品，空欄位表示不變更
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	code := r.FormValue("code")
	product, err := h.productService.UpdateProduct(
		r.Context(),
		code,
		optionalFormValue(r, "name"),
		optionalFormValue(r, "brand"),
		optionalFormValue(r, "price"),
		optionalFormValue(r, "image"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProductFields), errors.Is(err, service.ErrInvalidPrice):
			api.ErrorJSON(w, http.StatusBadRequest, err, "you need to supply code plus at least one value to update")
		case errors.Is(err, service.ErrProductNotFound):
			api.ErrorJSON(w, http.StatusNotFound, err, "incorrect code supplied")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to update product")
		}
		return
	}

	api.SuccessJSON(w, dto.ConvertProductToDTO(product), fmt.Sprintf("data for product with code %s has been updated", code))
}

// DeleteProduct 後台刪除商品
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	code := r.FormValue("code")
	if err := h.productService.DeleteProduct(r.Context(), code); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingProductFields):
			api.ErrorJSON(w, http.StatusBadRequest, err, "you need to supply the product's code value to be able to delete it")
		case errors.Is(err, service.ErrProductNotFound):
			api.ErrorJSON(w, http.StatusNotFound, err, "incorrect code supplied")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to delete product")
		}
		return
	}

	api.SuccessJSON(w, nil, fmt.Sprintf("data for product with code %s has been deleted", code))
}

// optionalFormValue 空字串視為未提供
func optionalFormValue(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

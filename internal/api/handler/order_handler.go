package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// Orders 出貨視圖，列出所有訂單
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.GetAllOrders(r.Context())
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load orders")
		return
	}
	api.SuccessJSON(w, dto.ConvertOrdersToDTO(orders), "")
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/RoyceAzure/lab/shopcart/internal/api"
	"github.com/RoyceAzure/lab/shopcart/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/RoyceAzure/lab/shopcart/internal/util"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartService     service.ICartService
	checkoutService service.ICheckoutService
}

func NewCartHandler(cartService service.ICartService, checkoutService service.ICheckoutService) *CartHandler {
	if cartService == nil || checkoutService == nil {
		panic("cartService and checkoutService cannot be nil")
	}
	return &CartHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

// AddToCart 加入購物車
// form: code, quantity (正整數)
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	code := r.FormValue("code")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || code == "" {
		api.ErrorJSON(w, http.StatusBadRequest, service.ErrInvalidQuantity, "quantity must be a positive integer and code is required")
		return
	}

	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)

	if err := h.cartService.AddItem(ctx, sessionID, code, quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			api.ErrorJSON(w, http.StatusBadRequest, err, "quantity must be a positive integer")
		case errors.Is(err, service.ErrProductNotFound):
			api.ErrorJSON(w, http.StatusNotFound, err, "no product matches the supplied code")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to add item to cart")
		}
		return
	}

	cart, err := h.cartService.Get(ctx, sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load cart")
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart), "item added to cart")
}

// RemoveFromCart 移除購物車項目
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)

	if err := h.cartService.RemoveItem(ctx, sessionID, code); err != nil {
		if errors.Is(err, service.ErrCartNotFound) {
			api.ErrorJSON(w, http.StatusNotFound, err, "cart is empty")
			return
		}
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to remove item from cart")
		return
	}

	cart, err := h.cartService.Get(ctx, sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load cart")
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart), "item removed from cart")
}

// EmptyCart 清空購物車，冪等
func (h *CartHandler) EmptyCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)

	if err := h.cartService.Clear(ctx, sessionID); err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to empty cart")
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(nil), "cart emptied")
}

// ViewCart 結帳頁購物車內容
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)

	cart, err := h.cartService.Get(ctx, sessionID)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load cart")
		return
	}
	api.SuccessJSON(w, dto.ConvertCartToDTO(cart), "")
}

// Checkout 結帳
// form: fullname, address, city, eir，組成自由文字配送地址
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid form data")
		return
	}

	address := strings.Join([]string{
		r.FormValue("fullname"),
		r.FormValue("address"),
		r.FormValue("city"),
		r.FormValue("eir"),
	}, ", ")

	ctx := r.Context()
	sessionID := util.GetSessionIDFromContext(ctx)
	identity := util.GetIdentityFromContext(ctx)

	orders, err := h.checkoutService.Commit(ctx, sessionID, identity, address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityMissing):
			api.ErrorJSON(w, http.StatusUnauthorized, err, "please login to continue")
		case errors.Is(err, service.ErrForbiddenRole):
			api.ErrorJSON(w, http.StatusForbidden, err, "this operation is not available for your role")
		case errors.Is(err, service.ErrEmptyCartCommit):
			api.ErrorJSON(w, http.StatusBadRequest, err, "cart is empty")
		default:
			api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to commit orders")
		}
		return
	}

	api.SuccessJSON(w, dto.ConvertOrdersToDTO(orders), "orders committed")
}

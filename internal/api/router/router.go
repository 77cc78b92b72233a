package router

import (
	"github.com/RoyceAzure/lab/shopcart/internal/api/handler"
	m "github.com/RoyceAzure/lab/shopcart/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcart/internal/domain/model"
	"github.com/RoyceAzure/lab/shopcart/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *handler.Server, sessionService service.ISessionService, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.SessionMiddleware(sessionService))
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware)

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		// 帳號相關，不需登入
		r.Post("/sign_up", server.UserHandler.SignUp)
		r.Post("/login", server.UserHandler.Login)

		// 需登入
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Get("/logout", server.UserHandler.Logout)
			r.Get("/shop", server.ProductHandler.Shop)
		})

		// 購物車與結帳，admin/fulfillment不可使用
		r.Group(func(r chi.Router) {
			r.Use(m.BarAccessLevels(model.AccessLevelAdmin, model.AccessLevelFulfillment))
			r.Post("/add", server.CartHandler.AddToCart)
			r.Get("/delete/{code}", server.CartHandler.RemoveFromCart)
			r.Get("/empty", server.CartHandler.EmptyCart)
			r.Get("/cart", server.CartHandler.ViewCart)
			r.Post("/cart", server.CartHandler.Checkout)
		})

		// 後台商品管理
		r.Group(func(r chi.Router) {
			r.Use(m.RequireAccessLevel(model.AccessLevelAdmin))
			r.Get("/admin", server.ProductHandler.Shop)
			r.Post("/add_product", server.ProductHandler.AddProduct)
			r.Post("/update_product", server.ProductHandler.UpdateProduct)
			r.Post("/delete_product_data", server.ProductHandler.DeleteProduct)
		})

		// 出貨視圖
		r.With(m.RequireAccessLevel(model.AccessLevelFulfillment)).Get("/orders", server.OrderHandler.Orders)
	})

	return r
}

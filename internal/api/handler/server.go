package handler

type Server struct {
	UserHandler    *UserHandler
	CartHandler    *CartHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
}

func NewServer(
	userHandler *UserHandler,
	cartHandler *CartHandler,
	productHandler *ProductHandler,
	orderHandler *OrderHandler,
) *Server {
	return &Server{
		UserHandler:    userHandler,
		CartHandler:    cartHandler,
		ProductHandler: productHandler,
		OrderHandler:   orderHandler,
	}
}

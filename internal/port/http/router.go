package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/konecta/cart-service/internal/platform/logger"
)

// NewRouter wires the cart routes. Every route requires a valid JWT.
func NewRouter(cartHandler *CartHandler, jwtSecret string, log logger.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(JWTAuth(jwtSecret, log))

		authRouter.Get("/api/cart", cartHandler.GetCart)
		authRouter.Post("/api/cart/items", cartHandler.AddItem)
		authRouter.Delete("/api/cart/items/{productID}", cartHandler.RemoveItem)
		authRouter.Delete("/api/cart", cartHandler.ClearCart)
	})

	return r
}

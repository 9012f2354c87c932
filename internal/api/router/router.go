package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Dominion116/StyleHub/internal/api"
	m "github.com/Dominion116/StyleHub/internal/api/middleware"
)

func SetupRouter(server *api.Server, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.CallerMiddleware)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/market", func(r chi.Router) {
			r.Get("/info", server.MarketHandler.MarketInfo)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", server.MarketHandler.GetAllProducts)
				r.Post("/", server.MarketHandler.ListProduct)
				r.Get("/{id}", server.MarketHandler.GetProduct)
				r.Put("/{id}", server.MarketHandler.ModifyProduct)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.MarketHandler.GetAllOrders)
				r.With(m.AttachedValueMiddleware).Post("/", server.MarketHandler.CreateOrder)
				r.Get("/{id}", server.MarketHandler.GetOrder)
				r.Put("/{id}/status", server.MarketHandler.UpdateOrderStatus)
				r.Post("/{id}/cancel", server.MarketHandler.CancelOrder)
			})

			r.Get("/customers/{account}/orders", server.MarketHandler.GetCustomerOrders)

			r.Route("/sellers", func(r chi.Router) {
				r.Post("/", server.MarketHandler.AuthorizeSeller)
				r.Get("/{account}", server.MarketHandler.IsAuthorizedSeller)
				r.Delete("/{account}", server.MarketHandler.RevokeSeller)
			})

			r.Put("/fee", server.MarketHandler.SetPlatformFee)
			r.Post("/withdraw", server.MarketHandler.WithdrawFunds)
		})
	})

	// 在設置完所有路由後打印路由樹
	chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		logger.Debug().Str("method", method).Str("route", route).Msg("route registered")
		return nil
	})
	return r
}

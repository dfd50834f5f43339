package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/telemetry"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(cartUC usecase.CartUC, favoritesUC usecase.FavoritesUC, metrics *telemetry.Metrics, registry *prometheus.Registry) {
	r.router.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	r.router.Route("/api/v1", func(v1 chi.Router) {
		cartHandler := NewCartHandler(cartUC, metrics, r.logger)
		registerCartRoutes(v1, cartHandler)

		favoritesHandler := NewFavoritesHandler(favoritesUC, metrics, r.logger)
		registerFavoritesRoutes(v1, favoritesHandler)
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Get("/", h.getCart)
		cart.Post("/items", h.addToCart)
		cart.Patch("/items/{productID}", h.updateQuantity)
		cart.Delete("/items/{productID}", h.removeFromCart)
		cart.Put("/minicart", h.setMiniCartVisible)
	})

	router.Route("/recently-viewed", func(recent chi.Router) {
		recent.Get("/", h.getRecentlyViewed)
		recent.Post("/", h.addToRecentlyViewed)
		recent.Delete("/", h.clearRecentlyViewed)
	})
}

func registerFavoritesRoutes(router chi.Router, h *FavoritesHandler) {
	router.Route("/favorites", func(favorites chi.Router) {
		favorites.Get("/", h.listFavorites)
		favorites.Post("/toggle", h.toggleFavorite)
		favorites.Get("/{productID}", h.isFavorite)
	})
}

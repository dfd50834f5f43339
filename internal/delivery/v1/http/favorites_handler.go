package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/telemetry"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type FavoritesHandler struct {
	favoritesUsecase usecase.FavoritesUC
	metrics          *telemetry.Metrics
	logger           logger.Logger
}

func NewFavoritesHandler(favoritesUsecase usecase.FavoritesUC, metrics *telemetry.Metrics, logger logger.Logger) *FavoritesHandler {
	return &FavoritesHandler{favoritesUsecase: favoritesUsecase, metrics: metrics, logger: logger}
}

// listFavorites возвращает избранные товары в порядке добавления.
func (h *FavoritesHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites := h.favoritesUsecase.List()

	result := make([]ProductResponse, 0, len(favorites))
	for _, p := range favorites {
		result = append(result, toProductResponse(p))
	}

	WriteSuccess(w, http.StatusOK, result)
}

// toggleFavorite добавляет товар в избранное либо убирает его.
func (h *FavoritesHandler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	var payload ProductPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := parseProduct(payload)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	favorite, err := h.favoritesUsecase.Toggle(product)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.metrics.CartMutations.WithLabelValues("toggle_favorite").Inc()
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"favorite": favorite,
	})
}

// isFavorite сообщает, находится ли товар в избранном.
func (h *FavoritesHandler) isFavorite(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"favorite": h.favoritesUsecase.IsFavorite(productID),
	})
}

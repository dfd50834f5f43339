package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/telemetry"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	metrics     *telemetry.Metrics
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, metrics *telemetry.Metrics, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, metrics: metrics, logger: logger}
}

type addToCartRequest struct {
	Product  ProductPayload `json:"product"`
	Quantity int            `json:"quantity"`
	Size     string         `json:"size"`
	Color    string         `json:"color"`
}

type updateQuantityRequest struct {
	Size  string `json:"size"`
	Delta int    `json:"delta"`
}

type miniCartRequest struct {
	Visible bool `json:"visible"`
}

// getCart возвращает текущий снапшот корзины.
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, toSnapshotResponse(h.cartUsecase.Snapshot()))
}

// addToCart добавляет товар в корзину. Цена товара обязательна:
// без неё невозможно посчитать подытог.
func (h *CartHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if req.Product.Price == "" {
		h.logger.Warnf("%d %s: price is empty", http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		WriteError(w, e.ErrMissingFields)
		return
	}

	product, err := parseProduct(req.Product)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := h.cartUsecase.AddToCart(usecase.NewAddToCartReq(product, req.Quantity, req.Size, req.Color)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.metrics.CartMutations.WithLabelValues("add_to_cart").Inc()
	WriteSuccess(w, http.StatusCreated, toSnapshotResponse(h.cartUsecase.Snapshot()))
}

// removeFromCart удаляет позицию по ID товара и размеру из query-параметра size.
func (h *CartHandler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	size := r.URL.Query().Get("size")

	if err := h.cartUsecase.RemoveFromCart(usecase.NewRemoveFromCartReq(productID, size)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.metrics.CartMutations.WithLabelValues("remove_from_cart").Inc()
	WriteSuccess(w, http.StatusOK, toSnapshotResponse(h.cartUsecase.Snapshot()))
}

// updateQuantity изменяет количество позиции на дельту.
func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req updateQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	if err := h.cartUsecase.UpdateQuantity(usecase.NewUpdateQuantityReq(productID, req.Size, req.Delta)); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.metrics.CartMutations.WithLabelValues("update_quantity").Inc()
	WriteSuccess(w, http.StatusOK, toSnapshotResponse(h.cartUsecase.Snapshot()))
}

// setMiniCartVisible переключает видимость мини-корзины.
func (h *CartHandler) setMiniCartVisible(w http.ResponseWriter, r *http.Request) {
	var req miniCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	h.cartUsecase.SetMiniCartVisible(req.Visible)
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"mini_cart_visible": req.Visible,
	})
}

// getRecentlyViewed возвращает список недавно просмотренных товаров.
func (h *CartHandler) getRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	snapshot := h.cartUsecase.Snapshot()

	recent := make([]ProductResponse, 0, len(snapshot.RecentlyViewed))
	for _, p := range snapshot.RecentlyViewed {
		recent = append(recent, toProductResponse(p))
	}

	WriteSuccess(w, http.StatusOK, recent)
}

// addToRecentlyViewed регистрирует просмотр товара.
func (h *CartHandler) addToRecentlyViewed(w http.ResponseWriter, r *http.Request) {
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

	if err := h.cartUsecase.AddToRecentlyViewed(product); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	h.metrics.CartMutations.WithLabelValues("add_to_recently_viewed").Inc()
	WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"recorded": true,
	})
}

// clearRecentlyViewed очищает список недавно просмотренных товаров.
func (h *CartHandler) clearRecentlyViewed(w http.ResponseWriter, r *http.Request) {
	h.cartUsecase.ClearRecentlyViewed()

	h.metrics.CartMutations.WithLabelValues("clear_recently_viewed").Inc()
	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"cleared": true,
	})
}

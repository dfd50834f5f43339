package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductPayload — товар в теле запроса. Цена приходит десятичной строкой
// основной валюты ("280.00") и конвертируется в минорные единицы на границе API.
type ProductPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Rating   string `json:"rating"`
}

type ProductResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Rating   string `json:"rating,omitempty"`
}

type CartLineResponse struct {
	ProductResponse
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

type SubtotalResponse struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Display  string `json:"display"`
}

type CartSnapshotResponse struct {
	Items           []CartLineResponse `json:"items"`
	RecentlyViewed  []ProductResponse  `json:"recently_viewed"`
	MiniCartVisible bool               `json:"mini_cart_visible"`
	Subtotals       []SubtotalResponse `json:"subtotals"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrInvalidRequestBody):
		return http.StatusBadRequest, e.ErrInvalidRequestBody.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrProductIDRequired):
		return http.StatusBadRequest, e.ErrProductIDRequired.Error()
	case errors.Is(err, e.ErrQuantityMustBePositive):
		return http.StatusBadRequest, e.ErrQuantityMustBePositive.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrCurrencyRequired):
		return http.StatusBadRequest, e.ErrCurrencyRequired.Error()
	case errors.Is(err, e.ErrLineItemNotFound):
		return http.StatusNotFound, e.ErrLineItemNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON читает тело запроса с лимитом размера и десериализует его в dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidRequestBody)
	}

	return nil
}

// parseProduct валидирует товар из запроса и конвертирует цену в минорные единицы.
func parseProduct(payload ProductPayload) (domain.Product, error) {
	if strings.TrimSpace(payload.ID) == "" {
		return domain.Product{}, e.ErrProductIDRequired
	}

	var price domain.Money
	if payload.Price != "" {
		parsed, err := domain.ParsePrice(payload.Price, payload.Currency)
		if err != nil {
			return domain.Product{}, err
		}
		price = parsed
	}

	return *domain.NewProduct(payload.ID, payload.Name, price, payload.Image, payload.Category, payload.Rating), nil
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.Display(),
		Currency: p.Price.Currency,
		Amount:   p.Price.Amount,
		Image:    p.Image,
		Category: p.Category,
		Rating:   p.Rating,
	}
}

func toCartLineResponse(line domain.CartLine) CartLineResponse {
	return CartLineResponse{
		ProductResponse: toProductResponse(line.Product),
		Quantity:        line.Quantity,
		SelectedSize:    line.SelectedSize,
		SelectedColor:   line.SelectedColor,
	}
}

func toSnapshotResponse(snapshot *usecase.CartSnapshot) *CartSnapshotResponse {
	items := make([]CartLineResponse, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, toCartLineResponse(line))
	}

	recent := make([]ProductResponse, 0, len(snapshot.RecentlyViewed))
	for _, p := range snapshot.RecentlyViewed {
		recent = append(recent, toProductResponse(p))
	}

	subtotals := make([]SubtotalResponse, 0, len(snapshot.Subtotals))
	for _, s := range snapshot.Subtotals {
		subtotals = append(subtotals, SubtotalResponse{
			Currency: s.Currency,
			Amount:   s.Amount,
			Display:  domain.NewMoney(s.Amount, s.Currency).Display(),
		})
	}

	return &CartSnapshotResponse{
		Items:           items,
		RecentlyViewed:  recent,
		MiniCartVisible: snapshot.MiniCartVisible,
		Subtotals:       subtotals,
	}
}

package usecase

import "github.com/DRSN-tech/storefront-backend/internal/domain"

// CART USECASE

// AddToCartReq — запрос на добавление товара в корзину.
type AddToCartReq struct {
	Product  domain.Product
	Quantity int
	Size     string
	Color    string
}

// RemoveFromCartReq — запрос на удаление позиции корзины.
type RemoveFromCartReq struct {
	ProductID string
	Size      string
}

// UpdateQuantityReq — запрос на изменение количества позиции на дельту.
type UpdateQuantityReq struct {
	ProductID string
	Size      string
	Delta     int
}

// CartSnapshot — согласованный срез состояния корзины для подписчиков и чтения.
type CartSnapshot struct {
	Items           []domain.CartLine
	RecentlyViewed  []domain.Product
	MiniCartVisible bool
	Subtotals       []Subtotal
}

// Subtotal — сумма позиций корзины в одной валюте.
type Subtotal struct {
	Currency string
	Amount   int64
}

// PERSISTENCE

// StoreState — долговременная часть состояния корзины.
// Флаг видимости мини-корзины сюда не входит и не переживает перезапуск.
type StoreState struct {
	Items          []domain.CartLine
	RecentlyViewed []domain.Product
}

// MAPPERS

func NewAddToCartReq(product domain.Product, quantity int, size string, color string) *AddToCartReq {
	return &AddToCartReq{
		Product:  product,
		Quantity: quantity,
		Size:     size,
		Color:    color,
	}
}

func NewRemoveFromCartReq(productID string, size string) *RemoveFromCartReq {
	return &RemoveFromCartReq{
		ProductID: productID,
		Size:      size,
	}
}

func NewUpdateQuantityReq(productID string, size string, delta int) *UpdateQuantityReq {
	return &UpdateQuantityReq{
		ProductID: productID,
		Size:      size,
		Delta:     delta,
	}
}

func NewStoreState(items []domain.CartLine, recentlyViewed []domain.Product) *StoreState {
	return &StoreState{
		Items:          items,
		RecentlyViewed: recentlyViewed,
	}
}

func NewSubtotal(currency string, amount int64) Subtotal {
	return Subtotal{
		Currency: currency,
		Amount:   amount,
	}
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

type CartUC interface {
	Init(ctx context.Context)
	AddToCart(req *AddToCartReq) error
	RemoveFromCart(req *RemoveFromCartReq) error
	UpdateQuantity(req *UpdateQuantityReq) error
	AddToRecentlyViewed(product domain.Product) error
	ClearRecentlyViewed()
	SetMiniCartVisible(visible bool)
	Snapshot() *CartSnapshot
	Subscribe(fn func(*CartSnapshot)) string
	Unsubscribe(id string)
}

type FavoritesUC interface {
	Init(ctx context.Context)
	Toggle(product domain.Product) (bool, error)
	IsFavorite(productID string) bool
	List() []domain.Product
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
)

// StateRepository — контракт долговременного хранилища состояния витрины.
// Отсутствие сохранённых данных — не ошибка: Load-методы возвращают пустые коллекции.
// Ошибкой считается недоступность хранилища или повреждённые данные.
type StateRepository interface {
	LoadState(ctx context.Context) (*StoreState, error)
	SaveState(ctx context.Context, state *StoreState) error
	LoadFavorites(ctx context.Context) ([]domain.Product, error)
	SaveFavorites(ctx context.Context, favorites []domain.Product) error
}

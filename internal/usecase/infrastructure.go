package usecase

import "github.com/DRSN-tech/storefront-backend/internal/domain"

// StateWriter принимает снапшоты состояния на фоновую запись в хранилище.
// Вызовы не блокируются: последующий снапшот того же вида замещает ещё не записанный.
type StateWriter interface {
	EnqueueState(state *StoreState)
	EnqueueFavorites(favorites []domain.Product)
}

package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// FavoritesUseCase владеет набором избранных товаров.
// Набор сохраняет порядок добавления; проверка принадлежности выполняется по индексу за O(1).
type FavoritesUseCase struct {
	repo   StateRepository
	writer StateWriter
	logger logger.Logger

	mu    sync.Mutex
	items []domain.Product
	index map[string]struct{}
}

func NewFavoritesUC(repo StateRepository, writer StateWriter, logger logger.Logger) *FavoritesUseCase {
	return &FavoritesUseCase{
		repo:   repo,
		writer: writer,
		logger: logger,
		index:  make(map[string]struct{}),
	}
}

// Init загружает сохранённое избранное. Ошибка чтения не фатальна: набор стартует пустым.
func (f *FavoritesUseCase) Init(ctx context.Context) {
	const op = "FavoritesUseCase.Init"

	favorites, err := f.repo.LoadFavorites(ctx)
	if err != nil {
		f.logger.Warnf("failed to load favorites, starting empty: %v", e.Wrap(op, err))
		return
	}

	index := make(map[string]struct{}, len(favorites))
	for _, p := range favorites {
		index[p.ID] = struct{}{}
	}

	f.mu.Lock()
	f.items = favorites
	f.index = index
	f.mu.Unlock()

	f.logger.Infof("favorites loaded: %d item(s)", len(favorites))
}

// Toggle добавляет товар в избранное либо убирает его, если он уже там.
// Возвращает true, если после вызова товар находится в избранном.
func (f *FavoritesUseCase) Toggle(product domain.Product) (bool, error) {
	const op = "FavoritesUseCase.Toggle"

	if strings.TrimSpace(product.ID) == "" {
		return false, e.Wrap(op, e.ErrProductIDRequired)
	}

	f.mu.Lock()
	_, present := f.index[product.ID]
	if present {
		filtered := make([]domain.Product, 0, len(f.items)-1)
		for _, p := range f.items {
			if p.ID != product.ID {
				filtered = append(filtered, p)
			}
		}
		f.items = filtered
		delete(f.index, product.ID)
	} else {
		f.items = append(f.items, product)
		f.index[product.ID] = struct{}{}
	}

	favorites := make([]domain.Product, len(f.items))
	copy(favorites, f.items)
	f.writer.EnqueueFavorites(favorites)
	f.mu.Unlock()

	return !present, nil
}

// IsFavorite сообщает, находится ли товар в избранном.
func (f *FavoritesUseCase) IsFavorite(productID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.index[productID]
	return ok
}

// List возвращает избранные товары в порядке добавления.
func (f *FavoritesUseCase) List() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	favorites := make([]domain.Product, len(f.items))
	copy(favorites, f.items)
	return favorites
}

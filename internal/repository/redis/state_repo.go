package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/converter"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/clients"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	keyCartItems      = "storefront:cart_items"
	keyRecentlyViewed = "storefront:recently_viewed"
	keyFavorites      = "storefront:favorites"
)

// StateRepo хранит состояние витрины в Redis — альтернативный бэкенд для
// окружений, где локальный файл недоступен.
type StateRepo struct {
	client *clients.RedisClient
	conv   converter.StateConverter
	logger logger.Logger
}

func NewStateRepo(client *clients.RedisClient, conv converter.StateConverter, logger logger.Logger) *StateRepo {
	return &StateRepo{
		client: client,
		conv:   conv,
		logger: logger,
	}
}

// LoadState читает корзину и список недавно просмотренных.
// Отсутствие ключей — не ошибка: возвращаются пустые коллекции.
func (s *StateRepo) LoadState(ctx context.Context) (*usecase.StoreState, error) {
	var lineModels []converter.CartLineModel
	if err := s.getJSON(ctx, keyCartItems, &lineModels); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var productModels []converter.ProductModel
	if err := s.getJSON(ctx, keyRecentlyViewed, &productModels); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewStoreState(s.conv.ToLines(lineModels), s.conv.ToProducts(productModels)), nil
}

// SaveState перезаписывает корзину и список недавно просмотренных одним пайплайном.
func (s *StateRepo) SaveState(ctx context.Context, state *usecase.StoreState) error {
	items, err := json.Marshal(s.conv.ToLineModels(state.Items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	recent, err := json.Marshal(s.conv.ToProductModels(state.RecentlyViewed))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	pipeline := s.client.Client.TxPipeline()
	pipeline.Set(ctx, keyCartItems, items, 0)
	pipeline.Set(ctx, keyRecentlyViewed, recent, 0)

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LoadFavorites читает избранное. Отсутствие ключа — пустая коллекция.
func (s *StateRepo) LoadFavorites(ctx context.Context) ([]domain.Product, error) {
	var models []converter.ProductModel
	if err := s.getJSON(ctx, keyFavorites, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToProducts(models), nil
}

// SaveFavorites перезаписывает избранное целиком.
func (s *StateRepo) SaveFavorites(ctx context.Context, favorites []domain.Product) error {
	data, err := json.Marshal(s.conv.ToProductModels(favorites))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, keyFavorites, data, 0).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// getJSON читает и десериализует значение по ключу; промах ключа оставляет dst нетронутым.
func (s *StateRepo) getJSON(ctx context.Context, key string, dst any) error {
	data, err := s.client.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil
		}
		return e.Wrap(key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return e.Wrap(key, err)
	}

	return nil
}

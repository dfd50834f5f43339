package bolt

import (
	"context"
	"encoding/json"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/repository/converter"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"go.etcd.io/bbolt"
)

const (
	stateBucket = "storefront_state"

	keyCartItems      = "cart_items"
	keyRecentlyViewed = "recently_viewed"
	keyFavorites      = "favorites"
)

// StateRepo хранит состояние витрины в локальном файле BoltDB — аналог
// локального хранилища устройства, переживающего перезапуск процесса.
type StateRepo struct {
	db     *bbolt.DB
	conv   converter.StateConverter
	logger logger.Logger
}

func NewStateRepo(db *bbolt.DB, conv converter.StateConverter, logger logger.Logger) (*StateRepo, error) {
	repo := &StateRepo{
		db:     db,
		conv:   conv,
		logger: logger,
	}

	if err := repo.ensureBucket(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return repo, nil
}

// LoadState читает корзину и список недавно просмотренных.
// Отсутствие ключей — не ошибка: возвращаются пустые коллекции.
func (r *StateRepo) LoadState(ctx context.Context) (*usecase.StoreState, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var (
		lineModels    []converter.CartLineModel
		productModels []converter.ProductModel
	)

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))

		if data := bucket.Get([]byte(keyCartItems)); data != nil {
			if err := json.Unmarshal(data, &lineModels); err != nil {
				return e.Wrap(keyCartItems, err)
			}
		}

		if data := bucket.Get([]byte(keyRecentlyViewed)); data != nil {
			if err := json.Unmarshal(data, &productModels); err != nil {
				return e.Wrap(keyRecentlyViewed, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewStoreState(r.conv.ToLines(lineModels), r.conv.ToProducts(productModels)), nil
}

// SaveState атомарно перезаписывает корзину и список недавно просмотренных.
func (r *StateRepo) SaveState(ctx context.Context, state *usecase.StoreState) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	items, err := json.Marshal(r.conv.ToLineModels(state.Items))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	recent, err := json.Marshal(r.conv.ToProductModels(state.RecentlyViewed))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))

		if err := bucket.Put([]byte(keyCartItems), items); err != nil {
			return err
		}

		return bucket.Put([]byte(keyRecentlyViewed), recent)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LoadFavorites читает избранное. Отсутствие ключа — пустая коллекция.
func (r *StateRepo) LoadFavorites(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductModel

	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(stateBucket))

		if data := bucket.Get([]byte(keyFavorites)); data != nil {
			if err := json.Unmarshal(data, &models); err != nil {
				return e.Wrap(keyFavorites, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToProducts(models), nil
}

// SaveFavorites перезаписывает избранное целиком.
func (r *StateRepo) SaveFavorites(ctx context.Context, favorites []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := json.Marshal(r.conv.ToProductModels(favorites))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	err = r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(stateBucket)).Put([]byte(keyFavorites), data)
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *StateRepo) ensureBucket() error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(stateBucket))
		return err
	})
}

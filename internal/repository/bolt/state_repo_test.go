package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	boltRepo "github.com/DRSN-tech/storefront-backend/internal/repository/bolt"
	"github.com/DRSN-tech/storefront-backend/internal/repository/converter/generated"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

func openRepo(t *testing.T) (*boltRepo.StateRepo, *bbolt.DB) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "storefront.db")
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := boltRepo.NewStateRepo(db, generated.NewStateConverterImpl(), nopLogger{})
	require.NoError(t, err)

	return repo, db
}

func testProduct(id string) domain.Product {
	return *domain.NewProduct(id, "Cashmere Sweater", domain.NewMoney(28000, "GBP"), "https://cdn.example.com/"+id+".jpg", "knitwear", "4.6")
}

func TestStateRepo_RoundTrip(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	state := usecase.NewStoreState(
		[]domain.CartLine{
			*domain.NewCartLine(testProduct("A"), 2, "M", "black"),
			*domain.NewCartLine(testProduct("A"), 1, "L", ""),
			*domain.NewCartLine(testProduct("B"), 3, "", "ivory"),
		},
		[]domain.Product{testProduct("C"), testProduct("A"), testProduct("B")},
	)

	require.NoError(t, repo.SaveState(ctx, state))

	loaded, err := repo.LoadState(ctx)
	require.NoError(t, err)
	require.Equal(t, state.Items, loaded.Items)
	require.Equal(t, state.RecentlyViewed, loaded.RecentlyViewed)
}

func TestStateRepo_EmptyStoreLoadsEmptyCollections(t *testing.T) {
	repo, _ := openRepo(t)

	state, err := repo.LoadState(context.Background())
	require.NoError(t, err)
	require.Empty(t, state.Items)
	require.Empty(t, state.RecentlyViewed)

	favorites, err := repo.LoadFavorites(context.Background())
	require.NoError(t, err)
	require.Empty(t, favorites)
}

func TestStateRepo_FavoritesRoundTrip(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	favorites := []domain.Product{testProduct("A"), testProduct("B")}
	require.NoError(t, repo.SaveFavorites(ctx, favorites))

	loaded, err := repo.LoadFavorites(ctx)
	require.NoError(t, err)
	require.Equal(t, favorites, loaded)
}

func TestStateRepo_OverwritesWholeState(t *testing.T) {
	repo, _ := openRepo(t)
	ctx := context.Background()

	first := usecase.NewStoreState(
		[]domain.CartLine{*domain.NewCartLine(testProduct("A"), 1, "M", "")},
		nil,
	)
	require.NoError(t, repo.SaveState(ctx, first))

	second := usecase.NewStoreState(nil, []domain.Product{testProduct("B")})
	require.NoError(t, repo.SaveState(ctx, second))

	loaded, err := repo.LoadState(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded.Items)
	require.Len(t, loaded.RecentlyViewed, 1)
}

func TestStateRepo_MalformedDataIsAnError(t *testing.T) {
	repo, db := openRepo(t)

	err := db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte("storefront_state")).Put([]byte("cart_items"), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = repo.LoadState(context.Background())
	require.Error(t, err)
}

func TestStateRepo_CancelledContextIsAnError(t *testing.T) {
	repo, _ := openRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.LoadState(ctx)
	require.Error(t, err)

	err = repo.SaveState(ctx, usecase.NewStoreState(nil, nil))
	require.Error(t, err)
}

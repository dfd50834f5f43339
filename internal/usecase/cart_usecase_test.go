package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type mockStateRepo struct {
	mu           sync.Mutex
	state        *usecase.StoreState
	favorites    []domain.Product
	loadStateErr error
	loadFavErr   error
	saveErr      error
}

func (m *mockStateRepo) LoadState(ctx context.Context) (*usecase.StoreState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadStateErr != nil {
		return nil, m.loadStateErr
	}
	if m.state == nil {
		return usecase.NewStoreState(nil, nil), nil
	}
	return m.state, nil
}

func (m *mockStateRepo) SaveState(ctx context.Context, state *usecase.StoreState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = state
	return nil
}

func (m *mockStateRepo) LoadFavorites(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadFavErr != nil {
		return nil, m.loadFavErr
	}
	return m.favorites, nil
}

func (m *mockStateRepo) SaveFavorites(ctx context.Context, favorites []domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.favorites = favorites
	return nil
}

type mockWriter struct {
	mu        sync.Mutex
	states    []*usecase.StoreState
	favorites [][]domain.Product
}

func (w *mockWriter) EnqueueState(state *usecase.StoreState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.states = append(w.states, state)
}

func (w *mockWriter) EnqueueFavorites(favorites []domain.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.favorites = append(w.favorites, favorites)
}

func (w *mockWriter) lastState() *usecase.StoreState {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.states) == 0 {
		return nil
	}
	return w.states[len(w.states)-1]
}

func newCartUC(t *testing.T) (*usecase.CartUseCase, *mockStateRepo, *mockWriter) {
	t.Helper()
	repo := &mockStateRepo{}
	writer := &mockWriter{}
	return usecase.NewCartUC(repo, writer, 10, nopLogger{}), repo, writer
}

func product(id string) domain.Product {
	return *domain.NewProduct(id, "Wool Coat "+id, domain.NewMoney(28000, "GBP"), "https://cdn.example.com/"+id+".jpg", "coats", "4.8")
}

func TestCartUseCase_AddToCart(t *testing.T) {
	t.Run("MergesQuantityForSameProductAndSize", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 2, "M", "")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 3, "M", "")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 1)
		require.Equal(t, "A", snapshot.Items[0].ID)
		require.Equal(t, "M", snapshot.Items[0].SelectedSize)
		require.Equal(t, 5, snapshot.Items[0].Quantity)
	})

	t.Run("KeepsDistinctSizesAsSeparateLines", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "M", "")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 2, "L", "")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 2)
	})

	t.Run("EmptySizeIsAValidIdentityValue", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "", "")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "", "")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 1)
		require.Equal(t, 2, snapshot.Items[0].Quantity)
	})

	t.Run("OverwritesColorOnMergeWhenProvided", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "M", "black")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "M", "camel")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 1)
		require.Equal(t, "camel", snapshot.Items[0].SelectedColor)
	})

	t.Run("KeepsColorOnMergeWhenOmitted", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "M", "black")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(p, 1, "M", "")))

		snapshot := uc.Snapshot()
		require.Equal(t, "black", snapshot.Items[0].SelectedColor)
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		p := product("A")

		require.ErrorIs(t, uc.AddToCart(usecase.NewAddToCartReq(p, 0, "", "")), e.ErrQuantityMustBePositive)
		require.ErrorIs(t, uc.AddToCart(usecase.NewAddToCartReq(p, -5, "", "")), e.ErrQuantityMustBePositive)
		require.Empty(t, uc.Snapshot().Items)
	})

	t.Run("RejectsMissingProductID", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.ErrorIs(t, uc.AddToCart(usecase.NewAddToCartReq(domain.Product{}, 1, "", "")), e.ErrProductIDRequired)
		require.ErrorIs(t, uc.AddToCart(nil), e.ErrProductIDRequired)
	})

	t.Run("ShowsMiniCart", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.False(t, uc.Snapshot().MiniCartVisible)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "", "")))
		require.True(t, uc.Snapshot().MiniCartVisible)

		uc.SetMiniCartVisible(false)
		require.False(t, uc.Snapshot().MiniCartVisible)
	})
}

func TestCartUseCase_UpdateQuantity(t *testing.T) {
	t.Run("AppliesDelta", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 2, "M", "")))

		require.NoError(t, uc.UpdateQuantity(usecase.NewUpdateQuantityReq("A", "M", 3)))
		require.Equal(t, 5, uc.Snapshot().Items[0].Quantity)
	})

	t.Run("NeverDropsBelowOne", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "M", "")))

		require.NoError(t, uc.UpdateQuantity(usecase.NewUpdateQuantityReq("A", "M", -100)))
		require.Equal(t, 1, uc.Snapshot().Items[0].Quantity)
	})

	t.Run("IsSizeQualified", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "M", "")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "L", "")))

		require.NoError(t, uc.UpdateQuantity(usecase.NewUpdateQuantityReq("A", "M", 4)))

		snapshot := uc.Snapshot()
		for _, line := range snapshot.Items {
			switch line.SelectedSize {
			case "M":
				require.Equal(t, 5, line.Quantity)
			case "L":
				require.Equal(t, 1, line.Quantity)
			}
		}
	})

	t.Run("UnknownLineReturnsNotFound", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.ErrorIs(t, uc.UpdateQuantity(usecase.NewUpdateQuantityReq("missing", "", 1)), e.ErrLineItemNotFound)
	})
}

func TestCartUseCase_RemoveFromCart(t *testing.T) {
	t.Run("AddThenRemoveLeavesEmptyCart", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "", "")))
		require.Len(t, uc.Snapshot().Items, 1)

		require.NoError(t, uc.RemoveFromCart(usecase.NewRemoveFromCartReq("A", "")))
		require.Empty(t, uc.Snapshot().Items)
	})

	t.Run("RemovesOnlyMatchingSize", func(t *testing.T) {
		uc, _, _ := newCartUC(t)
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "M", "")))
		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "L", "")))

		require.NoError(t, uc.RemoveFromCart(usecase.NewRemoveFromCartReq("A", "M")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 1)
		require.Equal(t, "L", snapshot.Items[0].SelectedSize)
	})

	t.Run("UnknownLineReturnsNotFound", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.ErrorIs(t, uc.RemoveFromCart(usecase.NewRemoveFromCartReq("missing", "")), e.ErrLineItemNotFound)
	})
}

func TestCartUseCase_RecentlyViewed(t *testing.T) {
	t.Run("CapsListAndEvictsOldest", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11"}
		for _, id := range ids {
			require.NoError(t, uc.AddToRecentlyViewed(product(id)))
		}

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.RecentlyViewed, 10)
		require.Equal(t, "p11", snapshot.RecentlyViewed[0].ID)
		require.Equal(t, "p2", snapshot.RecentlyViewed[9].ID)
	})

	t.Run("ReviewingMovesToFrontWithoutDuplicating", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.NoError(t, uc.AddToRecentlyViewed(product("p1")))
		require.NoError(t, uc.AddToRecentlyViewed(product("p2")))
		require.NoError(t, uc.AddToRecentlyViewed(product("p3")))
		require.NoError(t, uc.AddToRecentlyViewed(product("p1")))

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.RecentlyViewed, 3)
		require.Equal(t, "p1", snapshot.RecentlyViewed[0].ID)
		require.Equal(t, "p3", snapshot.RecentlyViewed[1].ID)
		require.Equal(t, "p2", snapshot.RecentlyViewed[2].ID)
	})

	t.Run("ClearEmptiesList", func(t *testing.T) {
		uc, _, writer := newCartUC(t)

		require.NoError(t, uc.AddToRecentlyViewed(product("p1")))
		uc.ClearRecentlyViewed()

		require.Empty(t, uc.Snapshot().RecentlyViewed)
		require.Empty(t, writer.lastState().RecentlyViewed)
	})

	t.Run("RejectsMissingProductID", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		require.ErrorIs(t, uc.AddToRecentlyViewed(domain.Product{}), e.ErrProductIDRequired)
	})
}

func TestCartUseCase_Init(t *testing.T) {
	t.Run("EmptyStoreYieldsEmptyState", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		uc.Init(context.Background())

		snapshot := uc.Snapshot()
		require.Empty(t, snapshot.Items)
		require.Empty(t, snapshot.RecentlyViewed)
		require.False(t, snapshot.MiniCartVisible)
	})

	t.Run("RestoresPersistedState", func(t *testing.T) {
		repo := &mockStateRepo{
			state: usecase.NewStoreState(
				[]domain.CartLine{*domain.NewCartLine(product("A"), 2, "M", "black")},
				[]domain.Product{product("B")},
			),
		}
		uc := usecase.NewCartUC(repo, &mockWriter{}, 10, nopLogger{})

		uc.Init(context.Background())

		snapshot := uc.Snapshot()
		require.Len(t, snapshot.Items, 1)
		require.Equal(t, 2, snapshot.Items[0].Quantity)
		require.Len(t, snapshot.RecentlyViewed, 1)
	})

	t.Run("ReadFailureFallsBackToEmpty", func(t *testing.T) {
		repo := &mockStateRepo{loadStateErr: errors.New("storage unavailable")}
		uc := usecase.NewCartUC(repo, &mockWriter{}, 10, nopLogger{})

		uc.Init(context.Background())

		snapshot := uc.Snapshot()
		require.Empty(t, snapshot.Items)
		require.Empty(t, snapshot.RecentlyViewed)
	})
}

func TestCartUseCase_Persistence(t *testing.T) {
	t.Run("EveryMutationEnqueuesFullState", func(t *testing.T) {
		uc, _, writer := newCartUC(t)

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "M", "")))
		require.NoError(t, uc.AddToRecentlyViewed(product("B")))
		require.NoError(t, uc.RemoveFromCart(usecase.NewRemoveFromCartReq("A", "M")))

		require.Len(t, writer.states, 3)

		last := writer.lastState()
		require.Empty(t, last.Items)
		require.Len(t, last.RecentlyViewed, 1)
	})

	t.Run("MiniCartVisibilityIsNotPersisted", func(t *testing.T) {
		uc, _, writer := newCartUC(t)

		uc.SetMiniCartVisible(true)
		require.Empty(t, writer.states)
	})
}

func TestCartUseCase_Subscribers(t *testing.T) {
	t.Run("NotifiedSynchronouslyOnEveryChange", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		var snapshots []*usecase.CartSnapshot
		id := uc.Subscribe(func(s *usecase.CartSnapshot) {
			snapshots = append(snapshots, s)
		})
		require.NotEmpty(t, id)

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "", "")))
		uc.SetMiniCartVisible(false)

		require.Len(t, snapshots, 2)
		require.True(t, snapshots[0].MiniCartVisible)
		require.False(t, snapshots[1].MiniCartVisible)
	})

	t.Run("UnsubscribeStopsNotifications", func(t *testing.T) {
		uc, _, _ := newCartUC(t)

		calls := 0
		id := uc.Subscribe(func(*usecase.CartSnapshot) { calls++ })
		uc.Unsubscribe(id)

		require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(product("A"), 1, "", "")))
		require.Zero(t, calls)
	})
}

func TestCartUseCase_Subtotals(t *testing.T) {
	uc, _, _ := newCartUC(t)

	gbp := product("A") // 28000 GBP
	usd := *domain.NewProduct("B", "Silk Scarf", domain.NewMoney(9900, "USD"), "", "scarves", "")

	require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(gbp, 2, "M", "")))
	require.NoError(t, uc.AddToCart(usecase.NewAddToCartReq(usd, 1, "", "")))

	snapshot := uc.Snapshot()
	require.Equal(t, []usecase.Subtotal{
		usecase.NewSubtotal("GBP", 56000),
		usecase.NewSubtotal("USD", 9900),
	}, snapshot.Subtotals)
}

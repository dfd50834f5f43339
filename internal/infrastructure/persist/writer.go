package persist

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/cfg"
	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/internal/infrastructure/telemetry"
	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/jitter"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

// Writer — единственный владелец записи в StateRepository.
// Снапшоты попадают в очередь без блокировки вызывающего; очередь хранит только
// последний снапшот каждого вида, так что записи не могут обогнать друг друга,
// а частые мутации схлопываются в одну запись.
type Writer struct {
	repo    usecase.StateRepository
	logger  logger.Logger
	metrics *telemetry.Metrics
	cfg     *cfg.WriterCfg

	mu             sync.Mutex
	pendingState   *usecase.StoreState
	pendingFavs    []domain.Product
	favoritesDirty bool

	kick chan struct{}
	stop chan struct{}
	wg   sync.WaitGroup
}

func NewWriter(
	repo usecase.StateRepository,
	cfg *cfg.WriterCfg,
	metrics *telemetry.Metrics,
	logger logger.Logger,
) *Writer {
	return &Writer{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

// Start запускает фоновую горутину записи.
func (w *Writer) Start() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run()
	}()
}

// Stop останавливает горутину и дописывает оставшиеся снапшоты.
func (w *Writer) Stop() {
	close(w.stop)
	w.wg.Wait()
	w.flush()
}

// EnqueueState ставит снапшот корзины в очередь, замещая ещё не записанный.
func (w *Writer) EnqueueState(state *usecase.StoreState) {
	w.mu.Lock()
	w.pendingState = state
	w.mu.Unlock()

	w.wake()
}

// EnqueueFavorites ставит снапшот избранного в очередь, замещая ещё не записанный.
func (w *Writer) EnqueueFavorites(favorites []domain.Product) {
	w.mu.Lock()
	w.pendingFavs = favorites
	w.favoritesDirty = true
	w.mu.Unlock()

	w.wake()
}

func (w *Writer) wake() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *Writer) run() {
	for {
		select {
		case <-w.kick:
			w.flush()
		case <-w.stop:
			return
		}
	}
}

// flush записывает все отложенные снапшоты. Новые снапшоты, поступившие во время
// записи, подхватываются следующей итерацией цикла.
func (w *Writer) flush() {
	for {
		w.mu.Lock()
		state := w.pendingState
		favorites := w.pendingFavs
		favoritesDirty := w.favoritesDirty
		w.pendingState = nil
		w.pendingFavs = nil
		w.favoritesDirty = false
		w.mu.Unlock()

		if state == nil && !favoritesDirty {
			return
		}

		if state != nil {
			w.writeWithRetry("cart state", func(ctx context.Context) error {
				return w.repo.SaveState(ctx, state)
			})
		}

		if favoritesDirty {
			w.writeWithRetry("favorites", func(ctx context.Context) error {
				return w.repo.SaveFavorites(ctx, favorites)
			})
		}
	}
}

// writeWithRetry выполняет одну запись с повторами и экспоненциальной задержкой.
// Исчерпав попытки, отбрасывает снапшот: память остаётся источником истины,
// а следующая мутация принесёт новый полный снапшот.
func (w *Writer) writeWithRetry(kind string, save func(ctx context.Context) error) {
	const op = "Writer.writeWithRetry"

	for attempt := 0; attempt < w.cfg.MaxRetries; attempt++ {
		err := w.writeOnce(save)
		if err == nil {
			w.metrics.PersistWrites.WithLabelValues(telemetry.PersistStatusOK).Inc()
			return
		}

		if attempt == w.cfg.MaxRetries-1 {
			w.logger.Warnf("dropping %s snapshot after %d attempt(s): %v", kind, w.cfg.MaxRetries, e.Wrap(op, err))
			w.metrics.PersistWrites.WithLabelValues(telemetry.PersistStatusDropped).Inc()
			return
		}

		sleep := jitter.ExponentialBackoff(w.cfg.BaseBackoff, w.cfg.MaxBackoff, attempt, jitter.DefaultJitter)
		w.logger.Warnf("%s write failed, retrying in %v (attempt %d): %v", kind, sleep, attempt+1, err)
		w.metrics.PersistRetries.Inc()

		select {
		case <-time.After(sleep):
		case <-w.stop:
			// На остановке добиваем без задержки последней попыткой
		}
	}
}

func (w *Writer) writeOnce(save func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.SaveTimeout)
	defer cancel()

	return save(ctx)
}

package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/DRSN-tech/storefront-backend/internal/domain"
	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// CartUseCase владеет состоянием корзины и списка недавно просмотренных товаров.
// Все мутации применяются к памяти синхронно; запись в хранилище уходит через StateWriter
// и не влияет на результат операции. Память остаётся источником истины на время сессии.
type CartUseCase struct {
	repo        StateRepository
	writer      StateWriter
	logger      logger.Logger
	recentLimit int

	mu              sync.Mutex
	items           []domain.CartLine
	recentlyViewed  []domain.Product
	miniCartVisible bool

	subMu       sync.Mutex
	subscribers map[string]func(*CartSnapshot)
}

func NewCartUC(
	repo StateRepository,
	writer StateWriter,
	recentLimit int,
	logger logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		repo:        repo,
		writer:      writer,
		logger:      logger,
		recentLimit: recentLimit,
		subscribers: make(map[string]func(*CartSnapshot)),
	}
}

// Init загружает сохранённое состояние корзины из хранилища.
// Ошибка чтения или повреждённые данные не фатальны: корзина стартует пустой.
func (c *CartUseCase) Init(ctx context.Context) {
	const op = "CartUseCase.Init"

	state, err := c.repo.LoadState(ctx)
	if err != nil {
		c.logger.Warnf("failed to load cart state, starting empty: %v", e.Wrap(op, err))
		return
	}

	c.mu.Lock()
	c.items = state.Items
	c.recentlyViewed = state.RecentlyViewed
	c.mu.Unlock()

	c.logger.Infof("cart state loaded: %d item(s), %d recently viewed", len(state.Items), len(state.RecentlyViewed))
}

// AddToCart добавляет товар в корзину, сливая количество с существующей позицией
// по ключу (ID товара, размер). Непустой цвет при слиянии замещает сохранённый.
// Побочный эффект: мини-корзина становится видимой.
func (c *CartUseCase) AddToCart(req *AddToCartReq) error {
	const op = "CartUseCase.AddToCart"

	if err := c.validateAdd(req); err != nil {
		return e.Wrap(op, err)
	}

	key := domain.LineKey{ProductID: req.Product.ID, Size: req.Size}

	c.mu.Lock()
	if idx := c.findLine(key); idx >= 0 {
		c.items[idx].Quantity += req.Quantity
		if req.Color != "" {
			c.items[idx].SelectedColor = req.Color
		}
	} else {
		c.items = append(c.items, *domain.NewCartLine(req.Product, req.Quantity, req.Size, req.Color))
	}
	c.miniCartVisible = true
	c.enqueueLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// RemoveFromCart удаляет одну позицию по ключу (ID товара, размер).
// Позиции того же товара с другими размерами не затрагиваются.
func (c *CartUseCase) RemoveFromCart(req *RemoveFromCartReq) error {
	const op = "CartUseCase.RemoveFromCart"

	if req == nil || strings.TrimSpace(req.ProductID) == "" {
		return e.Wrap(op, e.ErrProductIDRequired)
	}

	key := domain.LineKey{ProductID: req.ProductID, Size: req.Size}

	c.mu.Lock()
	idx := c.findLine(key)
	if idx < 0 {
		c.mu.Unlock()
		return e.Wrap(op, e.ErrLineItemNotFound)
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.enqueueLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// UpdateQuantity изменяет количество позиции на дельту, не опуская его ниже единицы.
// Для удаления позиции предназначен RemoveFromCart.
func (c *CartUseCase) UpdateQuantity(req *UpdateQuantityReq) error {
	const op = "CartUseCase.UpdateQuantity"

	if req == nil || strings.TrimSpace(req.ProductID) == "" {
		return e.Wrap(op, e.ErrProductIDRequired)
	}

	key := domain.LineKey{ProductID: req.ProductID, Size: req.Size}

	c.mu.Lock()
	idx := c.findLine(key)
	if idx < 0 {
		c.mu.Unlock()
		return e.Wrap(op, e.ErrLineItemNotFound)
	}

	quantity := c.items[idx].Quantity + req.Delta
	if quantity < 1 {
		quantity = 1
	}
	c.items[idx].Quantity = quantity
	c.enqueueLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// AddToRecentlyViewed ставит товар в начало списка недавно просмотренных.
// Повторный просмотр перемещает товар в начало без дублирования; список усечён до лимита.
func (c *CartUseCase) AddToRecentlyViewed(product domain.Product) error {
	const op = "CartUseCase.AddToRecentlyViewed"

	if strings.TrimSpace(product.ID) == "" {
		return e.Wrap(op, e.ErrProductIDRequired)
	}

	c.mu.Lock()
	filtered := make([]domain.Product, 0, len(c.recentlyViewed)+1)
	filtered = append(filtered, product)
	for _, p := range c.recentlyViewed {
		if p.ID != product.ID {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > c.recentLimit {
		filtered = filtered[:c.recentLimit]
	}
	c.recentlyViewed = filtered
	c.enqueueLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
	return nil
}

// ClearRecentlyViewed очищает список недавно просмотренных товаров.
func (c *CartUseCase) ClearRecentlyViewed() {
	c.mu.Lock()
	c.recentlyViewed = nil
	c.enqueueLocked()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// SetMiniCartVisible переключает видимость мини-корзины. Чисто UI-состояние, не сохраняется.
func (c *CartUseCase) SetMiniCartVisible(visible bool) {
	c.mu.Lock()
	c.miniCartVisible = visible
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snapshot)
}

// Snapshot возвращает согласованный срез текущего состояния корзины.
func (c *CartUseCase) Snapshot() *CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe регистрирует подписчика, получающего снапшот после каждого изменения состояния.
// Возвращает идентификатор подписки для Unsubscribe.
func (c *CartUseCase) Subscribe(fn func(*CartSnapshot)) string {
	id := uuid.NewString()

	c.subMu.Lock()
	c.subscribers[id] = fn
	c.subMu.Unlock()

	return id
}

func (c *CartUseCase) Unsubscribe(id string) {
	c.subMu.Lock()
	delete(c.subscribers, id)
	c.subMu.Unlock()
}

func (c *CartUseCase) validateAdd(req *AddToCartReq) error {
	if req == nil || strings.TrimSpace(req.Product.ID) == "" {
		return e.ErrProductIDRequired
	}

	if req.Quantity <= 0 {
		return e.ErrQuantityMustBePositive
	}

	return nil
}

// findLine возвращает индекс позиции по ключу либо -1. Вызывается под c.mu.
func (c *CartUseCase) findLine(key domain.LineKey) int {
	for i := range c.items {
		if c.items[i].Key() == key {
			return i
		}
	}

	return -1
}

// enqueueLocked передаёт копию долговременного состояния на фоновую запись.
// Вызывается под c.mu, чтобы снапшоты попадали в очередь в порядке мутаций.
func (c *CartUseCase) enqueueLocked() {
	items := make([]domain.CartLine, len(c.items))
	copy(items, c.items)

	recent := make([]domain.Product, len(c.recentlyViewed))
	copy(recent, c.recentlyViewed)

	c.writer.EnqueueState(NewStoreState(items, recent))
}

// snapshotLocked собирает срез состояния с подытогами по валютам. Вызывается под c.mu.
func (c *CartUseCase) snapshotLocked() *CartSnapshot {
	items := make([]domain.CartLine, len(c.items))
	copy(items, c.items)

	recent := make([]domain.Product, len(c.recentlyViewed))
	copy(recent, c.recentlyViewed)

	totals := make(map[string]int64)
	for _, line := range c.items {
		totals[line.Price.Currency] += line.Price.Amount * int64(line.Quantity)
	}

	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	subtotals := make([]Subtotal, 0, len(currencies))
	for _, currency := range currencies {
		subtotals = append(subtotals, NewSubtotal(currency, totals[currency]))
	}

	return &CartSnapshot{
		Items:           items,
		RecentlyViewed:  recent,
		MiniCartVisible: c.miniCartVisible,
		Subtotals:       subtotals,
	}
}

// notify синхронно рассылает снапшот всем подписчикам.
func (c *CartUseCase) notify(snapshot *CartSnapshot) {
	c.subMu.Lock()
	fns := make([]func(*CartSnapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

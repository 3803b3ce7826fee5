package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/cart"
	redisclient "github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/logger"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/types"
)

// CartView is the response shape for cart reads: lines in insertion order
// plus derived totals.
type CartView struct {
	Lines      []cart.Line `json:"lines"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)
	UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type cartService struct {
	log         *logger.Logger
	productRepo repos.ProductRepo
	store       redisclient.CartStore

	// Serializes mutations per user so cart writes from one session apply in
	// invocation order. Unrelated users proceed concurrently.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewCartService(log *logger.Logger, productRepo repos.ProductRepo, store redisclient.CartStore) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{
		log:         serviceLog,
		productRepo: productRepo,
		store:       store,
		locks:       make(map[uuid.UUID]*sync.Mutex),
	}
}

func (cs *cartService) userLock(userID uuid.UUID) *sync.Mutex {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	l, ok := cs.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		cs.locks[userID] = l
	}
	return l
}

func (cs *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error) {
	c, err := cs.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

func (cs *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	l := cs.userLock(userID)
	l.Lock()
	defer l.Unlock()

	product, err := cs.fetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c, err := cs.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(*product); err != nil {
		return nil, err
	}
	if err := cs.saveCart(ctx, userID, c); err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

func (cs *cartService) UpdateQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartView, error) {
	l := cs.userLock(userID)
	l.Lock()
	defer l.Unlock()

	c, err := cs.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := cs.saveCart(ctx, userID, c); err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

func (cs *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error) {
	l := cs.userLock(userID)
	l.Lock()
	defer l.Unlock()

	c, err := cs.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(productID)
	if err := cs.saveCart(ctx, userID, c); err != nil {
		return nil, err
	}
	return viewOf(c), nil
}

func (cs *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	l := cs.userLock(userID)
	l.Lock()
	defer l.Unlock()

	return cs.store.Delete(ctx, userID)
}

func (cs *cartService) fetchProduct(ctx context.Context, productID uuid.UUID) (*types.Product, error) {
	found, err := cs.productRepo.GetByIDs(ctx, nil, []uuid.UUID{productID})
	if err != nil {
		return nil, fmt.Errorf("fetch product: %w", err)
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: product %s", errs.ErrNotFound, productID)
	}
	return found[0], nil
}

// loadCart rehydrates the persisted cart against the live product table.
// Lines whose product has since disappeared are dropped.
func (cs *cartService) loadCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	stored, err := cs.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(stored) == 0 {
		return cart.New(), nil
	}

	ids := make([]uuid.UUID, 0, len(stored))
	for _, s := range stored {
		ids = append(ids, s.ProductID)
	}
	products, err := cs.productRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("hydrate cart products: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]cart.Line, 0, len(stored))
	for _, s := range stored {
		p, ok := byID[s.ProductID]
		if !ok {
			cs.log.Debug("Dropping cart line for missing product", "product_id", s.ProductID)
			continue
		}
		lines = append(lines, cart.Line{Product: *p, Quantity: s.Quantity})
	}
	return cart.Rehydrate(lines), nil
}

func (cs *cartService) saveCart(ctx context.Context, userID uuid.UUID, c *cart.Cart) error {
	lines := c.Lines()
	stored := make([]redisclient.StoredLine, 0, len(lines))
	for _, l := range lines {
		stored = append(stored, redisclient.StoredLine{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
		})
	}
	if err := cs.store.Save(ctx, userID, stored); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func viewOf(c *cart.Cart) *CartView {
	lines := c.Lines()
	items, total := computeTotals(lines)
	return &CartView{
		Lines:      lines,
		TotalItems: items,
		TotalPrice: total,
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/logger"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/types"
)

type fakeProductRepo struct {
	products map[uuid.UUID]types.Product
}

func newFakeProductRepo(products ...types.Product) *fakeProductRepo {
	m := make(map[uuid.UUID]types.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.Product) ([]*types.Product, error) {
	for _, p := range products {
		f.products[p.ID] = *p
	}
	return products, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, tx *gorm.DB, product *types.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Product, error) {
	out := make([]*types.Product, 0, len(f.products))
	for id := range f.products {
		p := f.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, tx *gorm.DB, productIDs []uuid.UUID) ([]*types.Product, error) {
	out := make([]*types.Product, 0, len(productIDs))
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok {
			cp := p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uuid.UUID) (*types.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeProductRepo) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, by int) error {
	p, ok := f.products[productID]
	if !ok || p.Stock < by {
		return nil
	}
	p.Stock -= by
	f.products[productID] = p
	return nil
}

func (f *fakeProductRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.products)), nil
}

type fakeCartStore struct {
	carts map[uuid.UUID][]redisclient.StoredLine
	saves int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[uuid.UUID][]redisclient.StoredLine)}
}

func (f *fakeCartStore) Load(ctx context.Context, userID uuid.UUID) ([]redisclient.StoredLine, error) {
	return f.carts[userID], nil
}

func (f *fakeCartStore) Save(ctx context.Context, userID uuid.UUID, lines []redisclient.StoredLine) error {
	f.saves++
	if len(lines) == 0 {
		delete(f.carts, userID)
		return nil
	}
	stored := make([]redisclient.StoredLine, len(lines))
	copy(stored, lines)
	f.carts[userID] = stored
	return nil
}

func (f *fakeCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(f.carts, userID)
	return nil
}

func (f *fakeCartStore) Close() error { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestCartServiceAddItemPersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "p", Price: 10, Stock: 5}
	repo := newFakeProductRepo(p)
	store := newFakeCartStore()
	svc := NewCartService(testLogger(t), repo, store)
	userID := uuid.New()

	view, err := svc.AddItem(ctx, userID, p.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if view.TotalItems != 1 || view.TotalPrice != 10 {
		t.Fatalf("view totals: got items=%d price=%v", view.TotalItems, view.TotalPrice)
	}

	// A fresh read goes through the store, not any in-process state.
	reloaded, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(reloaded.Lines) != 1 || reloaded.Lines[0].Quantity != 1 {
		t.Fatalf("reloaded cart: %+v", reloaded.Lines)
	}
	if store.saves != 1 {
		t.Fatalf("saves: want=1 got=%d", store.saves)
	}
}

func TestCartServiceAddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := NewCartService(testLogger(t), newFakeProductRepo(), newFakeCartStore())

	_, err := svc.AddItem(ctx, uuid.New(), uuid.New())
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got=%v", err)
	}
}

func TestCartServiceAddItemOutOfStockLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "p", Price: 10, Stock: 1}
	store := newFakeCartStore()
	svc := NewCartService(testLogger(t), newFakeProductRepo(p), store)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, p.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.AddItem(ctx, userID, p.ID)
	if !errs.IsOutOfStock(err) {
		t.Fatalf("expected OutOfStockError, got=%v", err)
	}

	view, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.TotalItems != 1 {
		t.Fatalf("persisted quantity changed: got=%d", view.TotalItems)
	}
}

func TestCartServiceDropsLinesForDeletedProducts(t *testing.T) {
	ctx := context.Background()
	kept := types.Product{ID: uuid.New(), Name: "kept", Price: 5, Stock: 10}
	gone := types.Product{ID: uuid.New(), Name: "gone", Price: 7, Stock: 10}
	repo := newFakeProductRepo(kept, gone)
	store := newFakeCartStore()
	svc := NewCartService(testLogger(t), repo, store)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, kept.ID); err != nil {
		t.Fatalf("add kept: %v", err)
	}
	if _, err := svc.AddItem(ctx, userID, gone.ID); err != nil {
		t.Fatalf("add gone: %v", err)
	}
	if err := repo.Delete(ctx, nil, gone.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}

	view, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(view.Lines) != 1 || view.Lines[0].Product.ID != kept.ID {
		t.Fatalf("expected only kept line, got=%+v", view.Lines)
	}
}

func TestCartServiceUpdateQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "p", Price: 4, Stock: 10}
	svc := NewCartService(testLogger(t), newFakeProductRepo(p), newFakeCartStore())
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	view, err := svc.UpdateQuantity(ctx, userID, p.ID, 3)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if view.TotalItems != 3 || view.TotalPrice != 12 {
		t.Fatalf("after update: items=%d price=%v", view.TotalItems, view.TotalPrice)
	}

	view, err = svc.RemoveItem(ctx, userID, p.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(view.Lines) != 0 {
		t.Fatalf("lines after remove: %+v", view.Lines)
	}
}

func TestCartServiceClearCart(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "p", Price: 4, Stock: 10}
	store := newFakeCartStore()
	svc := NewCartService(testLogger(t), newFakeProductRepo(p), store)
	userID := uuid.New()

	if _, err := svc.AddItem(ctx, userID, p.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	view, err := svc.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.TotalItems != 0 {
		t.Fatalf("cart not empty after clear: items=%d", view.TotalItems)
	}
}

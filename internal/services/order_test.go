package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/cart"
	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/types"
)

type fakeOrderRepo struct {
	orders []*types.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, tx *gorm.DB, orders []*types.Order) ([]*types.Order, error) {
	f.orders = append(f.orders, orders...)
	return orders, nil
}

func (f *fakeOrderRepo) GetByIDs(ctx context.Context, tx *gorm.DB, orderIDs []uuid.UUID) ([]*types.Order, error) {
	var out []*types.Order
	for _, id := range orderIDs {
		for _, o := range f.orders {
			if o.ID == id {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Order, error) {
	var out []*types.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, orderID uuid.UUID, status string) error {
	for _, o := range f.orders {
		if o.ID == orderID {
			o.Status = status
		}
	}
	return nil
}

func (f *fakeOrderRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) SumTotalPrice(ctx context.Context, tx *gorm.DB) (float64, error) {
	var sum float64
	for _, o := range f.orders {
		if o.Status != types.OrderStatusCancelled {
			sum += o.TotalPrice
		}
	}
	return sum, nil
}

// testDB gives PlaceOrder a real transaction to run its closure inside.
// The repos are fakes, so no tables are needed.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

type orderFixture struct {
	svc      OrderService
	carts    CartService
	products *fakeProductRepo
	orders   *fakeOrderRepo
	store    *fakeCartStore
}

func newOrderFixture(t *testing.T, products ...types.Product) *orderFixture {
	t.Helper()
	log := testLogger(t)
	productRepo := newFakeProductRepo(products...)
	orderRepo := &fakeOrderRepo{}
	store := newFakeCartStore()
	cartSvc := NewCartService(log, productRepo, store)
	return &orderFixture{
		svc:      NewOrderService(testDB(t), log, orderRepo, productRepo, cartSvc),
		carts:    cartSvc,
		products: productRepo,
		orders:   orderRepo,
		store:    store,
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	fx := newOrderFixture(t)

	_, err := fx.svc.PlaceOrder(ctx, uuid.New(), ShippingAddress{})
	if !errors.Is(err, errs.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got=%v", err)
	}
	if len(fx.orders.orders) != 0 {
		t.Fatalf("order created from empty cart: %+v", fx.orders.orders)
	}
}

func TestPlaceOrderOutOfStockLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	p := types.Product{ID: uuid.New(), Name: "lamp", Price: 25, Currency: "$", Stock: 2}
	fx := newOrderFixture(t, p)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := fx.carts.AddItem(ctx, userID, p.ID); err != nil {
			t.Fatalf("add item: %v", err)
		}
	}

	// Another checkout bought a unit between carting and ordering.
	p.Stock = 1
	if err := fx.products.Update(ctx, nil, &p); err != nil {
		t.Fatalf("update stock: %v", err)
	}

	_, err := fx.svc.PlaceOrder(ctx, userID, ShippingAddress{FullName: "A B", Line1: "1 Way", City: "X", Postcode: "0", Country: "FR"})
	if !errs.IsOutOfStock(err) {
		t.Fatalf("expected OutOfStockError, got=%v", err)
	}

	if len(fx.orders.orders) != 0 {
		t.Fatalf("order persisted despite stock failure: %+v", fx.orders.orders)
	}
	if got := fx.products.products[p.ID].Stock; got != 1 {
		t.Fatalf("stock changed despite stock failure: got=%d", got)
	}
	view, err := fx.carts.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.TotalItems != 2 {
		t.Fatalf("cart altered despite stock failure: items=%d", view.TotalItems)
	}
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	ctx := context.Background()
	lamp := types.Product{ID: uuid.New(), Name: "lamp", Price: 25, Currency: "$", Stock: 5}
	chair := types.Product{ID: uuid.New(), Name: "chair", Price: 80, Currency: "$", Stock: 3}
	fx := newOrderFixture(t, lamp, chair)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := fx.carts.AddItem(ctx, userID, lamp.ID); err != nil {
			t.Fatalf("add lamp: %v", err)
		}
	}
	if _, err := fx.carts.AddItem(ctx, userID, chair.ID); err != nil {
		t.Fatalf("add chair: %v", err)
	}

	order, err := fx.svc.PlaceOrder(ctx, userID, ShippingAddress{FullName: "A B", Line1: "1 Way", City: "X", Postcode: "0", Country: "FR"})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if order.Status != types.OrderStatusPending {
		t.Fatalf("status: want=%q got=%q", types.OrderStatusPending, order.Status)
	}
	if order.TotalItems != 3 || math.Abs(order.TotalPrice-130) > 1e-9 {
		t.Fatalf("totals: items=%d price=%v", order.TotalItems, order.TotalPrice)
	}
	if order.Currency != "$" {
		t.Fatalf("currency: got=%q", order.Currency)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items: %+v", order.Items)
	}
	byProduct := make(map[uuid.UUID]types.OrderItem, len(order.Items))
	for _, it := range order.Items {
		byProduct[it.ProductID] = it
	}
	if it := byProduct[lamp.ID]; it.ProductName != "lamp" || it.UnitPrice != 25 || it.Quantity != 2 {
		t.Fatalf("lamp line: %+v", it)
	}
	if it := byProduct[chair.ID]; it.ProductName != "chair" || it.UnitPrice != 80 || it.Quantity != 1 {
		t.Fatalf("chair line: %+v", it)
	}

	if len(fx.orders.orders) != 1 {
		t.Fatalf("persisted orders: %d", len(fx.orders.orders))
	}
	if got := fx.products.products[lamp.ID].Stock; got != 3 {
		t.Fatalf("lamp stock after order: got=%d", got)
	}
	if got := fx.products.products[chair.ID].Stock; got != 2 {
		t.Fatalf("chair stock after order: got=%d", got)
	}

	view, err := fx.carts.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if view.TotalItems != 0 {
		t.Fatalf("cart not cleared after order: items=%d", view.TotalItems)
	}
}

func TestGetForUserRejectsForeignOrder(t *testing.T) {
	ctx := context.Background()
	fx := newOrderFixture(t)
	owner := uuid.New()
	order := &types.Order{ID: uuid.New(), UserID: owner, Status: types.OrderStatusPending}
	fx.orders.orders = append(fx.orders.orders, order)

	if _, err := fx.svc.GetForUser(ctx, owner, order.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := fx.svc.GetForUser(ctx, uuid.New(), order.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign reader, got=%v", err)
	}
}

func TestComputeTotals(t *testing.T) {
	cases := []struct {
		name      string
		lines     []cart.Line
		wantItems int
		wantTotal float64
	}{
		{
			name:      "empty",
			lines:     nil,
			wantItems: 0,
			wantTotal: 0,
		},
		{
			name: "single line",
			lines: []cart.Line{
				{Product: types.Product{ID: uuid.New(), Price: 9.99}, Quantity: 2},
			},
			wantItems: 2,
			wantTotal: 19.98,
		},
		{
			name: "mixed lines",
			lines: []cart.Line{
				{Product: types.Product{ID: uuid.New(), Price: 10}, Quantity: 1},
				{Product: types.Product{ID: uuid.New(), Price: 2.5}, Quantity: 4},
			},
			wantItems: 5,
			wantTotal: 20,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items, total := computeTotals(tc.lines)
			if items != tc.wantItems {
				t.Fatalf("items: want=%d got=%d", tc.wantItems, items)
			}
			if math.Abs(total-tc.wantTotal) > 1e-9 {
				t.Fatalf("total: want=%v got=%v", tc.wantTotal, total)
			}
		})
	}
}

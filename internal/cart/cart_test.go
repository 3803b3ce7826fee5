package cart

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/types"
)

func testProduct(name string, price float64, stock int) types.Product {
	return types.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
		Stock: stock,
	}
}

func TestAddItemSameProductCollapsesToOneLine(t *testing.T) {
	p1 := testProduct("p1", 10, 5)
	c := New()

	if err := c.AddItem(p1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := c.AddItem(p1); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines: want=1 got=%d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("quantity: want=2 got=%d", lines[0].Quantity)
	}
	if got := c.TotalPrice(); got != 20 {
		t.Fatalf("total price: want=20 got=%v", got)
	}
	if got := c.TotalItems(); got != 2 {
		t.Fatalf("total items: want=2 got=%d", got)
	}
}

func TestAddItemRejectedWhenStockExceeded(t *testing.T) {
	p := testProduct("limited", 5, 2)
	c := New()

	if err := c.AddItem(p); err != nil {
		t.Fatalf("add 1: %v", err)
	}
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add 2: %v", err)
	}

	err := c.AddItem(p)
	var oos *errs.OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got=%v", err)
	}
	if oos.Requested != 3 || oos.Available != 2 {
		t.Fatalf("requested/available: want=3/2 got=%d/%d", oos.Requested, oos.Available)
	}
	if got := c.TotalItems(); got != 2 {
		t.Fatalf("cart changed on rejected add: total items=%d", got)
	}
}

func TestAddItemZeroStockProduct(t *testing.T) {
	p := testProduct("gone", 5, 0)
	c := New()

	if err := c.AddItem(p); !errs.IsOutOfStock(err) {
		t.Fatalf("expected OutOfStockError, got=%v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("cart should stay empty")
	}
}

func TestRemoveThenAddStartsFreshLine(t *testing.T) {
	p := testProduct("p", 10, 10)
	c := New()

	for i := 0; i < 3; i++ {
		if err := c.AddItem(p); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	c.RemoveItem(p.ID)
	if !c.IsEmpty() {
		t.Fatal("cart should be empty after remove")
	}

	if err := c.AddItem(p); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("re-added line: want qty=1 got=%+v", lines)
	}
}

func TestRemoveItemUnknownProductIsNoOp(t *testing.T) {
	p := testProduct("p", 10, 10)
	c := New()
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	c.RemoveItem(uuid.New())

	if got := c.TotalItems(); got != 1 {
		t.Fatalf("total items: want=1 got=%d", got)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	p := testProduct("p", 10, 10)
	c := New()
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.UpdateQuantity(p.ID, 0); err != nil {
		t.Fatalf("update to 0: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("line should be removed at quantity 0")
	}
}

func TestUpdateQuantityUnknownProductIsNoOp(t *testing.T) {
	p := testProduct("p", 10, 10)
	c := New()
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.UpdateQuantity(uuid.New(), 5); err != nil {
		t.Fatalf("update unknown: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("cart changed: %+v", lines)
	}
}

func TestUpdateQuantityOnEmptyCartCreatesNothing(t *testing.T) {
	c := New()

	if err := c.UpdateQuantity(uuid.New(), 3); err != nil {
		t.Fatalf("update on empty cart: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatalf("line created on empty cart: %+v", c.Lines())
	}
}

func TestUpdateQuantityAboveStockRejected(t *testing.T) {
	p := testProduct("p", 10, 3)
	c := New()
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := c.UpdateQuantity(p.ID, 4); !errs.IsOutOfStock(err) {
		t.Fatalf("expected OutOfStockError, got=%v", err)
	}
	if got := c.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity changed on rejected update: got=%d", got)
	}
}

func TestTotalsRecomputedAfterEveryMutation(t *testing.T) {
	p1 := testProduct("p1", 10, 10)
	p2 := testProduct("p2", 2.5, 10)
	c := New()

	steps := []struct {
		name      string
		mutate    func() error
		wantItems int
		wantTotal float64
	}{
		{"add p1", func() error { return c.AddItem(p1) }, 1, 10},
		{"add p2", func() error { return c.AddItem(p2) }, 2, 12.5},
		{"p2 to 4", func() error { return c.UpdateQuantity(p2.ID, 4) }, 5, 20},
		{"remove p1", func() error { c.RemoveItem(p1.ID); return nil }, 4, 10},
		{"clear", func() error { c.Clear(); return nil }, 0, 0},
	}
	for _, step := range steps {
		if err := step.mutate(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if got := c.TotalItems(); got != step.wantItems {
			t.Fatalf("%s: total items want=%d got=%d", step.name, step.wantItems, got)
		}
		if got := c.TotalPrice(); math.Abs(got-step.wantTotal) > 1e-9 {
			t.Fatalf("%s: total price want=%v got=%v", step.name, step.wantTotal, got)
		}
	}
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	for i := 0; i < 3; i++ {
		if err := c.AddItem(testProduct("p", 1, 10)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("cart not empty after clear")
	}
	if c.TotalItems() != 0 || c.TotalPrice() != 0 {
		t.Fatalf("totals not zeroed: items=%d price=%v", c.TotalItems(), c.TotalPrice())
	}
}

func TestRehydrateDropsInvalidAndCollapsesDuplicates(t *testing.T) {
	p1 := testProduct("p1", 10, 10)
	p2 := testProduct("p2", 5, 10)

	c := Rehydrate([]Line{
		{Product: p1, Quantity: 2},
		{Product: p2, Quantity: 0},
		{Product: p1, Quantity: 1},
	})

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("lines: want=1 got=%d", len(lines))
	}
	if lines[0].Product.ID != p1.ID || lines[0].Quantity != 3 {
		t.Fatalf("collapsed line: got=%+v", lines[0])
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	p := testProduct("p", 10, 10)
	c := New()
	if err := c.AddItem(p); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := c.Lines()
	lines[0].Quantity = 99

	if got := c.Lines()[0].Quantity; got != 1 {
		t.Fatalf("internal state mutated through Lines(): got=%d", got)
	}
}

package cart

import (
	"github.com/google/uuid"

	errs "github.com/yungbote/storefront-backend/internal/pkg/errors"
	"github.com/yungbote/storefront-backend/internal/types"
)

// Line is one (product, quantity) pair. Quantity is always >= 1; a quantity
// that would drop below 1 removes the line instead.
type Line struct {
	Product  types.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// LineTotal is derived, never stored.
func (l Line) LineTotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is the in-memory cart aggregate for one session. Lines keep insertion
// order and hold at most one entry per product id. The zero value is an empty
// cart ready for use. Cart is not safe for concurrent use; callers serialize
// access per user.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Rehydrate rebuilds a cart from persisted lines, dropping any line with a
// non-positive quantity and collapsing duplicate product ids onto the first
// occurrence.
func Rehydrate(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if idx := c.indexOf(l.Product.ID); idx >= 0 {
			c.lines[idx].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// AddItem increments the line for product by one, appending a fresh
// quantity-1 line when absent. The mutation is rejected with
// *errs.OutOfStockError when it would exceed product.Stock.
func (c *Cart) AddItem(product types.Product) error {
	idx := c.indexOf(product.ID)
	want := 1
	if idx >= 0 {
		want = c.lines[idx].Quantity + 1
	}
	if want > product.Stock {
		return &errs.OutOfStockError{
			ProductID: product.ID.String(),
			Requested: want,
			Available: product.Stock,
		}
	}
	if idx >= 0 {
		c.lines[idx].Quantity = want
		c.lines[idx].Product = product
		return nil
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: 1})
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// UpdateQuantity sets the line's quantity. A quantity below 1 removes the
// line. An unknown product id is a silent no-op. A quantity above the line's
// product stock is rejected with *errs.OutOfStockError and the cart is left
// unchanged.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		c.RemoveItem(productID)
		return nil
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return nil
	}
	if quantity > c.lines[idx].Product.Stock {
		return &errs.OutOfStockError{
			ProductID: productID.String(),
			Requested: quantity,
			Available: c.lines[idx].Product.Stock,
		}
	}
	c.lines[idx].Quantity = quantity
	return nil
}

// Clear empties the cart. Used after successful order placement.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the lines in insertion order. The returned slice is a copy.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalItems is the sum of all line quantities, recomputed on every call.
func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of all line totals, recomputed on every call.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.LineTotal()
	}
	return total
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

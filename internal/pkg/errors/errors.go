package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is a generic sentinel for role failures.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCartEmpty rejects order placement against an empty cart.
	ErrCartEmpty = errors.New("cart is empty")
)

// OutOfStockError rejects a cart mutation that would commit more units than
// the product has available. The cart is left unchanged.
type OutOfStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %s out of stock: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

// IsOutOfStock reports whether err wraps an OutOfStockError.
func IsOutOfStock(err error) bool {
	var oos *OutOfStockError
	return errors.As(err, &oos)
}

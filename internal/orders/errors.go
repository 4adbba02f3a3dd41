package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when an order is created with no items.
	ErrEmptyCart = errors.New("order must contain at least one item")

	// ErrNotFound is returned when an order does not exist (or is not
	// visible to the requesting user).
	ErrNotFound = errors.New("order not found")

	// ErrVersionConflict is returned when a compare-and-swap update lost a
	// race with a concurrent writer. The caller should re-read and retry.
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// InsufficientStockError is returned when the compare-and-decrement on a
// variant's stock fails during order creation.
type InsufficientStockError struct {
	ProductID int64
	VariantID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %d variant %d", e.ProductID, e.VariantID)
}

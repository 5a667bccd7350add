package commerce

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for engine validation. All of them are client errors:
// the engine has no internal failure modes.
var (
	ErrInvalidQuantity     = errors.New("quantity must be greater than 0")
	ErrEmptyCart           = errors.New("cannot checkout with empty cart")
	ErrInvalidDiscountCode = errors.New("invalid or expired discount code")
	ErrNotEligible         = errors.New("not eligible to generate discount code yet")
)

// ProductNotFoundError indicates a requested product does not exist in the catalog.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError indicates the requested quantity exceeds the
// product's current stock.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: %d available", e.ProductID, e.Available)
}

package commerce

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enumerates the lifecycle states of an order. Current logic
// only ever creates orders in StatusConfirmed.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is an immutable record of a completed checkout. Items is the cart
// snapshot at checkout time.
type Order struct {
	ID             string
	Items          []CartItem
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	DiscountCode   string
	Status         OrderStatus
	CreatedAt      time.Time
	CustomerID     string
}

// CheckoutResult is what a successful checkout returns to the caller.
type CheckoutResult struct {
	OrderID        string
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	DiscountCode   string
	Message        string
}

// Report aggregates sales figures over the full order history.
type Report struct {
	TotalItemsPurchased int
	TotalPurchaseAmount decimal.Decimal
	DiscountCodes       []string
	TotalDiscountAmount decimal.Decimal
}

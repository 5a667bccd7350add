// Package commerce implements the storefront's commerce engine: a product
// catalog with reservation-style stock accounting, one process-wide cart,
// checkout into an append-only order history, single-use discount codes, and
// aggregate sales analytics.
//
// All state lives in memory inside Service. A single mutex serializes every
// operation, so the engine can be shared by a concurrently dispatching
// request layer while keeping the stock conservation invariant intact.
package commerce

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/xenking/storefront/internal/domain/product"
)

// DefaultDiscountNthOrder is the default N for the "every Nth order unlocks
// one discount code generation" rule.
const DefaultDiscountNthOrder = 5

var hundred = decimal.NewFromInt(100)

// Service is the commerce engine. It owns the catalog stock, the single live
// cart, the order history, and the discount code register as one unit.
type Service struct {
	mu       sync.Mutex
	catalog  map[string]*product.Product
	cart     Cart
	orders   []Order
	codes    *codeRegister
	counter  int
	nthOrder int

	now func() time.Time

	ordersPlaced metric.Int64Counter
	codesMinted  metric.Int64Counter
}

// NewService seeds the engine with deep copies of the given products. The
// catalog never grows afterwards; only stock mutates. nthOrder <= 0 falls
// back to DefaultDiscountNthOrder; a nil meter disables metrics.
func NewService(seed []product.Product, nthOrder int, meter metric.Meter) (*Service, error) {
	if nthOrder <= 0 {
		nthOrder = DefaultDiscountNthOrder
	}
	if meter == nil {
		meter = noop.Meter{}
	}

	ordersPlaced, err := meter.Int64Counter("storefront.orders",
		metric.WithDescription("Orders placed through checkout"))
	if err != nil {
		return nil, errors.Wrap(err, "orders counter")
	}
	codesMinted, err := meter.Int64Counter("storefront.discount_codes",
		metric.WithDescription("Discount codes minted"))
	if err != nil {
		return nil, errors.Wrap(err, "discount codes counter")
	}

	catalog := make(map[string]*product.Product, len(seed))
	for _, p := range seed {
		cp := p
		catalog[p.ID] = &cp
	}

	return &Service{
		catalog:      catalog,
		codes:        newCodeRegister(),
		nthOrder:     nthOrder,
		now:          time.Now,
		ordersPlaced: ordersPlaced,
		codesMinted:  codesMinted,
	}, nil
}

// AddToCart reserves quantity units of the product: the line is merged into
// an existing one for the same product or appended with a snapshot of the
// product's current fields, and the product's stock is decremented. Returns
// the updated cart.
func (s *Service) AddToCart(productID string, quantity int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog[productID]
	if !ok {
		return Cart{}, &ProductNotFoundError{ProductID: productID}
	}
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return Cart{}, &InsufficientStockError{ProductID: productID, Available: p.Stock}
	}

	merged := false
	for i := range s.cart.Items {
		if s.cart.Items[i].ProductID == productID {
			s.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.cart.Items = append(s.cart.Items, CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Product:   *p,
		})
	}

	p.Stock -= quantity
	s.cart.recalc()

	return s.cart.clone(), nil
}

// Cart returns a read-only copy of the current cart.
func (s *Service) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.clone()
}

// ClearCart restores every line's quantity back to its product's stock and
// resets the cart. Lines whose product vanished from the catalog are skipped
// silently.
func (s *Service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.cart.Items {
		if p, ok := s.catalog[item.ProductID]; ok {
			p.Stock += item.Quantity
		}
	}
	s.cart = Cart{}
}

// Checkout turns the current cart into an order, optionally consuming a
// single-use discount code. It either fully commits (order appended, code
// marked used, cart emptied) or fully aborts with no state change.
//
// The sold items' stock is NOT restored: it was taken at add-to-cart time
// and leaves the catalog for good. Only the explicit ClearCart returns
// reserved stock.
func (s *Service) Checkout(discountCode, customerID string) (CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart.Items) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	totalAmount := s.cart.TotalAmount
	discountAmount := decimal.Zero
	appliedCode := ""

	var code *DiscountCode
	if discountCode != "" {
		code = s.codes.findUnused(discountCode)
		if code == nil {
			return CheckoutResult{}, ErrInvalidDiscountCode
		}
		discountAmount = totalAmount.Mul(code.Percentage).Div(hundred).Round(3)
		appliedCode = discountCode
	}
	finalAmount := totalAmount.Sub(discountAmount).Round(3)

	now := s.now()
	if code != nil {
		code.Used = true
		usedAt := now
		code.UsedAt = &usedAt
	}

	order := Order{
		ID:             newOrderID(),
		Items:          append([]CartItem(nil), s.cart.Items...),
		TotalAmount:    totalAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		DiscountCode:   appliedCode,
		Status:         StatusConfirmed,
		CreatedAt:      now,
		CustomerID:     customerID,
	}
	s.orders = append(s.orders, order)
	s.counter++
	s.cart = Cart{}

	s.ordersPlaced.Add(context.Background(), 1)

	return CheckoutResult{
		OrderID:        order.ID,
		TotalAmount:    totalAmount,
		DiscountAmount: discountAmount,
		FinalAmount:    finalAmount,
		DiscountCode:   appliedCode,
		Message:        "Order placed successfully!",
	}, nil
}

// GenerateDiscountCode mints a new single-use 10% code when the order counter
// is a nonzero multiple of N. The check consumes nothing: repeated calls at
// the same eligible counter value keep minting fresh codes.
func (s *Service) GenerateDiscountCode() (DiscountCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counter == 0 || s.counter%s.nthOrder != 0 {
		return DiscountCode{}, ErrNotEligible
	}

	code := &DiscountCode{
		Code:       newDiscountCode(),
		Percentage: discountPercentage,
		CreatedAt:  s.now(),
	}
	s.codes.add(code)
	s.codesMinted.Add(context.Background(), 1)

	return *code, nil
}

// Analytics aggregates over the order history and the code register without
// mutating anything.
func (s *Service) Analytics() Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := 0
	purchase := decimal.Zero
	discount := decimal.Zero
	for _, o := range s.orders {
		for _, item := range o.Items {
			items += item.Quantity
		}
		purchase = purchase.Add(o.FinalAmount)
		discount = discount.Add(o.DiscountAmount)
	}

	return Report{
		TotalItemsPurchased: items,
		TotalPurchaseAmount: purchase,
		DiscountCodes:       s.codes.strings(),
		TotalDiscountAmount: discount,
	}
}

// Products returns copies of all catalog entries ordered by ID.
func (s *Service) Products() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]product.Product, 0, len(s.catalog))
	for _, p := range s.catalog {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Product returns a copy of a single catalog entry.
func (s *Service) Product(id string) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog[id]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return *p, nil
}

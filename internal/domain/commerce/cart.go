package commerce

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/product"
)

// CartItem is a single line in the cart. Product is a by-value snapshot taken
// at add time, so later catalog changes never rewrite cart or order history.
type CartItem struct {
	ProductID string
	Quantity  int
	Product   product.Product
}

// Cart holds the live cart lines together with derived totals. TotalAmount
// and ItemCount are recomputed after every mutation and never set directly.
type Cart struct {
	Items       []CartItem
	TotalAmount decimal.Decimal
	ItemCount   int
}

// recalc rebuilds the derived totals from the current lines.
func (c *Cart) recalc() {
	total := decimal.Zero
	count := 0
	for _, item := range c.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		total = total.Add(item.Product.Price.Mul(qty))
		count += item.Quantity
	}
	c.TotalAmount = total
	c.ItemCount = count
}

// clone returns an independent copy of the cart. CartItem carries only value
// types, so copying the slice is a deep copy.
func (c *Cart) clone() Cart {
	out := Cart{TotalAmount: c.TotalAmount, ItemCount: c.ItemCount}
	out.Items = append([]CartItem(nil), c.Items...)
	return out
}

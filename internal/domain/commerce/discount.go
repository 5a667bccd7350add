package commerce

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every generated code carries the same fixed percentage.
var discountPercentage = decimal.NewFromInt(10)

// Bloom filter sizing for the issued-code register. Capacity is generous:
// codes are only minted one per eligible order.
const (
	registerCapacity = 1 << 16
	registerFPR      = 0.001
)

// DiscountCode is a single-use promo code minted by the admin.
type DiscountCode struct {
	Code       string
	Percentage decimal.Decimal
	Used       bool
	CreatedAt  time.Time
	UsedAt     *time.Time
	// OrderID is reserved for linking a code to the order that consumed it.
	// Nothing populates it today.
	OrderID string
}

// codeRegister holds issued codes in generation order with a bloom filter in
// front, so checkout rejects never-issued codes without scanning the list.
type codeRegister struct {
	codes  []*DiscountCode
	filter *bloom.BloomFilter
}

func newCodeRegister() *codeRegister {
	return &codeRegister{
		filter: bloom.NewWithEstimates(registerCapacity, registerFPR),
	}
}

// add appends a freshly minted code to the register.
func (r *codeRegister) add(c *DiscountCode) {
	r.codes = append(r.codes, c)
	r.filter.AddString(c.Code)
}

// findUnused returns the unused code exactly matching the given string, or
// nil when the code is unknown or already consumed.
func (r *codeRegister) findUnused(code string) *DiscountCode {
	if !r.filter.TestString(code) {
		return nil
	}
	for _, c := range r.codes {
		if c.Code == code && !c.Used {
			return c
		}
	}
	return nil
}

// strings returns all issued code strings in generation order, used or not.
func (r *codeRegister) strings() []string {
	out := make([]string, len(r.codes))
	for i, c := range r.codes {
		out[i] = c.Code
	}
	return out
}

// newOrderID returns a fresh order identifier: "order_" plus a short random
// hex token.
func newOrderID() string {
	id := uuid.New()
	return "order_" + hex.EncodeToString(id[:])[:8]
}

// newDiscountCode returns a fresh code string: "SAVE10_" plus six random
// uppercase hex characters.
func newDiscountCode() string {
	id := uuid.New()
	return "SAVE10_" + strings.ToUpper(hex.EncodeToString(id[:])[:6])
}

package commerce

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeRegister(t *testing.T) {
	r := newCodeRegister()

	assert.Nil(t, r.findUnused("SAVE10_AAAAAA"), "never-issued code")

	code := &DiscountCode{Code: "SAVE10_AAAAAA", Percentage: decimal.NewFromInt(10), CreatedAt: time.Now()}
	r.add(code)

	found := r.findUnused("SAVE10_AAAAAA")
	require.NotNil(t, found)
	assert.Same(t, code, found)

	code.Used = true
	assert.Nil(t, r.findUnused("SAVE10_AAAAAA"), "consumed code")

	assert.Equal(t, []string{"SAVE10_AAAAAA"}, r.strings(), "used codes stay listed")
}

func TestIDGenerators(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := newOrderID()
		require.Len(t, id, len("order_")+8)
		_, dup := seen[id]
		require.False(t, dup, "duplicate order id %q", id)
		seen[id] = struct{}{}
	}

	codes := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := newDiscountCode()
		require.Len(t, code, len("SAVE10_")+6)
		_, dup := codes[code]
		require.False(t, dup, "duplicate code %q", code)
		codes[code] = struct{}{}
	}
}

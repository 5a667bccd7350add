package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront/internal/domain/commerce"
	"github.com/xenking/storefront/internal/domain/product"
)

func newTestServer(t *testing.T, nthOrder int) *httptest.Server {
	t.Helper()

	seed := []product.Product{
		{
			ID:       "prod_001",
			Name:     "Wireless Headphones",
			Price:    decimal.RequireFromString("199.99"),
			Category: product.CategoryElectronics,
			Stock:    50,
		},
		{
			ID:       "prod_002",
			Name:     "Cotton T-Shirt",
			Price:    decimal.RequireFromString("24.99"),
			Category: product.CategoryClothing,
			Stock:    100,
		},
	}

	engine, err := commerce.NewService(seed, nthOrder, nil)
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(engine).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// do issues a request and decodes the JSON response into a generic map.
func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func TestAddToCartEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":2}`)
		require.Equal(t, http.StatusOK, status)

		assert.EqualValues(t, 2, body["item_count"])
		assert.EqualValues(t, 399.98, body["total_amount"])

		items, ok := body["items"].([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "prod_001", item["product_id"])
		assert.EqualValues(t, 2, item["quantity"])

		snap := item["product"].(map[string]any)
		assert.Equal(t, "Wireless Headphones", snap["name"])
		assert.EqualValues(t, 199.99, snap["price"])
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_999","quantity":1}`)
		require.Equal(t, http.StatusNotFound, status)
		assert.EqualValues(t, http.StatusNotFound, body["code"])
		assert.Contains(t, body["message"], "prod_999")
	})

	t.Run("InvalidQuantity", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":0}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "quantity")
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":51}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "insufficient stock")
	})

	t.Run("MissingProductID", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"quantity":1}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "product_id is required")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, _ := do(t, srv, http.MethodPost, "/api/v1/cart/add", `{{`)
		require.Equal(t, http.StatusBadRequest, status)
	})
}

func TestCartEndpoints(t *testing.T) {
	srv := newTestServer(t, 0)

	status, body := do(t, srv, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["item_count"])
	assert.Empty(t, body["items"])

	_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
		`{"product_id":"prod_002","quantity":3}`)

	status, body = do(t, srv, http.MethodDelete, "/api/v1/cart/clear", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cart cleared successfully", body["message"])

	status, body = do(t, srv, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["item_count"])
}

func TestCheckoutEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := newTestServer(t, 0)

		_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":1}`)

		status, body := do(t, srv, http.MethodPost, "/api/v1/checkout", "")
		require.Equal(t, http.StatusOK, status)

		orderID, ok := body["order_id"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(orderID, "order_"), "order id %q", orderID)
		assert.EqualValues(t, 199.99, body["total_amount"])
		assert.EqualValues(t, 0, body["discount_amount"])
		assert.EqualValues(t, 199.99, body["final_amount"])
		assert.Nil(t, body["discount_code"])
		assert.Equal(t, "Order placed successfully!", body["message"])
	})

	t.Run("EmptyCart", func(t *testing.T) {
		srv := newTestServer(t, 0)

		status, body := do(t, srv, http.MethodPost, "/api/v1/checkout", "")
		require.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "empty cart")
	})

	t.Run("UnknownCode", func(t *testing.T) {
		srv := newTestServer(t, 0)

		_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":1}`)

		status, body := do(t, srv, http.MethodPost, "/api/v1/checkout",
			`{"discount_code":"SAVE10_FAKE00"}`)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body["message"], "invalid or expired discount code")
	})

	t.Run("NullDiscountCode", func(t *testing.T) {
		srv := newTestServer(t, 0)

		_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
			`{"product_id":"prod_001","quantity":1}`)

		status, _ := do(t, srv, http.MethodPost, "/api/v1/checkout",
			`{"discount_code":null,"customer_id":null}`)
		require.Equal(t, http.StatusOK, status)
	})
}

func TestDiscountFlow(t *testing.T) {
	srv := newTestServer(t, 1)

	// Order 1 unlocks code generation.
	_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
		`{"product_id":"prod_002","quantity":1}`)
	status, _ := do(t, srv, http.MethodPost, "/api/v1/checkout", "")
	require.Equal(t, http.StatusOK, status)

	status, body := do(t, srv, http.MethodPost, "/api/v1/admin/discount/generate", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Discount code generated successfully", body["message"])
	code, ok := body["discount_code"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(code, "SAVE10_"), "code %q", code)
	assert.NotEmpty(t, body["created_at"])

	// Spend the code on order 2.
	_, _ = do(t, srv, http.MethodPost, "/api/v1/cart/add",
		`{"product_id":"prod_001","quantity":1}`)
	status, body = do(t, srv, http.MethodPost, "/api/v1/checkout",
		`{"discount_code":"`+code+`"}`)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 19.999, body["discount_amount"])
	assert.EqualValues(t, 179.991, body["final_amount"])
	assert.Equal(t, code, body["discount_code"])

	// Analytics reflects both orders and the minted code.
	status, body = do(t, srv, http.MethodGet, "/api/v1/admin/analytics", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["total_items_purchased"])
	assert.EqualValues(t, 19.999, body["total_discount_amount"])
	codes, ok := body["discount_codes"].([]any)
	require.True(t, ok)
	require.Len(t, codes, 1)
	assert.Equal(t, code, codes[0])
}

func TestGenerateDiscountCodeEndpoint_NotEligible(t *testing.T) {
	srv := newTestServer(t, 5)

	status, body := do(t, srv, http.MethodPost, "/api/v1/admin/discount/generate", "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "not eligible")
}

func TestProductEndpoints(t *testing.T) {
	srv := newTestServer(t, 0)

	t.Run("List", func(t *testing.T) {
		resp, err := srv.Client().Get(srv.URL + "/api/v1/products")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var products []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
		require.Len(t, products, 2)
		assert.Equal(t, "prod_001", products[0]["id"])
		assert.Equal(t, "prod_002", products[1]["id"])
	})

	t.Run("Get", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/products/prod_002", "")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Cotton T-Shirt", body["name"])
		assert.Equal(t, "clothing", body["category"])
		assert.EqualValues(t, 100, body["stock"])
	})

	t.Run("NotFound", func(t *testing.T) {
		status, body := do(t, srv, http.MethodGet, "/api/v1/products/prod_999", "")
		require.Equal(t, http.StatusNotFound, status)
		assert.EqualValues(t, http.StatusNotFound, body["code"])
	})
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, 0)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/cart/add", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

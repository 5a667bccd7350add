// Package handler is the thin HTTP adapter over the commerce engine. Each
// route maps 1:1 to one engine operation; all business rules live in the
// engine.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/storefront/internal/domain/commerce"
	"github.com/xenking/storefront/internal/domain/product"
)

// maxBodySize bounds request bodies; every request here is a small JSON object.
const maxBodySize = 1 << 20

// Handler serves the storefront API.
type Handler struct {
	engine *commerce.Service
}

// New constructs a Handler around the given engine.
func New(engine *commerce.Service) *Handler {
	return &Handler{engine: engine}
}

// Register mounts all API routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/cart/add", h.addToCart)
	mux.HandleFunc("GET /api/v1/cart", h.getCart)
	mux.HandleFunc("DELETE /api/v1/cart/clear", h.clearCart)
	mux.HandleFunc("POST /api/v1/checkout", h.checkout)
	mux.HandleFunc("POST /api/v1/admin/discount/generate", h.generateDiscountCode)
	mux.HandleFunc("GET /api/v1/admin/analytics", h.analytics)
	mux.HandleFunc("GET /api/v1/products", h.listProducts)
	mux.HandleFunc("GET /api/v1/products/{id}", h.getProduct)
}

// writeEngineError maps engine errors onto the JSON error envelope. Unknown
// products are 404; every other engine failure is a plain client error.
func writeEngineError(w http.ResponseWriter, err error) {
	var notFound *commerce.ProductNotFoundError
	switch {
	case errors.As(err, &notFound), errors.Is(err, product.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

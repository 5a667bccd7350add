package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

type addToCartRequest struct {
	ProductID string
	Quantity  int
}

func decodeAddToCart(r *http.Request) (addToCartRequest, error) {
	var req addToCartRequest

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return req, errors.Wrap(err, "read body")
	}

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "product_id":
			v, err := d.Str()
			req.ProductID = v
			return err
		case "quantity":
			v, err := d.Int()
			req.Quantity = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return req, errors.Wrap(err, "decode request")
	}

	if req.ProductID == "" {
		return req, errors.New("product_id is required")
	}
	return req, nil
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddToCart(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cart, err := h.engine.AddToCart(req.ProductID, req.Quantity)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCart(e, cart) })
}

func (h *Handler) getCart(w http.ResponseWriter, _ *http.Request) {
	cart := h.engine.Cart()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCart(e, cart) })
}

func (h *Handler) clearCart(w http.ResponseWriter, _ *http.Request) {
	h.engine.ClearCart()
	writeMessage(w, "Cart cleared successfully")
}

package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

type checkoutRequest struct {
	DiscountCode string
	CustomerID   string
}

func decodeCheckout(r *http.Request) (checkoutRequest, error) {
	var req checkoutRequest

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return req, errors.Wrap(err, "read body")
	}
	// Both fields are optional: an empty body checks out without a code.
	if len(data) == 0 {
		return req, nil
	}

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "discount_code":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := d.Str()
			req.DiscountCode = v
			return err
		case "customer_id":
			if d.Next() == jx.Null {
				return d.Null()
			}
			v, err := d.Str()
			req.CustomerID = v
			return err
		default:
			return d.Skip()
		}
	}); err != nil {
		return req, errors.Wrap(err, "decode request")
	}
	return req, nil
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCheckout(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.engine.Checkout(req.DiscountCode, req.CustomerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeCheckoutResult(e, result) })
}

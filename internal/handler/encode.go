package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront/internal/domain/commerce"
	"github.com/xenking/storefront/internal/domain/product"
)

// writeJSON encodes one value with jx and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes the error envelope shared by all failure responses.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// writeMessage writes a bare confirmation body.
func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// num emits a decimal as a plain JSON number.
func num(e *jx.Encoder, d decimal.Decimal) {
	e.RawStr(d.String())
}

// timestamp emits a time in sortable RFC 3339 form.
func timestamp(e *jx.Encoder, t time.Time) {
	e.Str(t.Format(time.RFC3339))
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("description", func(e *jx.Encoder) { e.Str(p.Description) })
		e.Field("price", func(e *jx.Encoder) { num(e, p.Price) })
		e.Field("category", func(e *jx.Encoder) { e.Str(string(p.Category)) })
		e.Field("stock", func(e *jx.Encoder) { e.Int(p.Stock) })
		if p.ImageURL != "" {
			e.Field("image_url", func(e *jx.Encoder) { e.Str(p.ImageURL) })
		}
	})
}

func encodeCart(e *jx.Encoder, c commerce.Cart) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range c.Items {
					encodeCartItem(e, item)
				}
			})
		})
		e.Field("total_amount", func(e *jx.Encoder) { num(e, c.TotalAmount) })
		e.Field("item_count", func(e *jx.Encoder) { e.Int(c.ItemCount) })
	})
}

func encodeCartItem(e *jx.Encoder, item commerce.CartItem) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		e.Field("product", func(e *jx.Encoder) { encodeProduct(e, item.Product) })
	})
}

func encodeCheckoutResult(e *jx.Encoder, res commerce.CheckoutResult) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("order_id", func(e *jx.Encoder) { e.Str(res.OrderID) })
		e.Field("total_amount", func(e *jx.Encoder) { num(e, res.TotalAmount) })
		e.Field("discount_amount", func(e *jx.Encoder) { num(e, res.DiscountAmount) })
		e.Field("final_amount", func(e *jx.Encoder) { num(e, res.FinalAmount) })
		e.Field("discount_code", func(e *jx.Encoder) {
			if res.DiscountCode == "" {
				e.Null()
				return
			}
			e.Str(res.DiscountCode)
		})
		e.Field("message", func(e *jx.Encoder) { e.Str(res.Message) })
	})
}

func encodeReport(e *jx.Encoder, report commerce.Report) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("total_items_purchased", func(e *jx.Encoder) { e.Int(report.TotalItemsPurchased) })
		e.Field("total_purchase_amount", func(e *jx.Encoder) { num(e, report.TotalPurchaseAmount) })
		e.Field("discount_codes", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, code := range report.DiscountCodes {
					e.Str(code)
				}
			})
		})
		e.Field("total_discount_amount", func(e *jx.Encoder) { num(e, report.TotalDiscountAmount) })
	})
}

package handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

func (h *Handler) generateDiscountCode(w http.ResponseWriter, _ *http.Request) {
	code, err := h.engine.GenerateDiscountCode()
	if err != nil {
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("message", func(e *jx.Encoder) { e.Str("Discount code generated successfully") })
			e.Field("discount_code", func(e *jx.Encoder) { e.Str(code.Code) })
			e.Field("created_at", func(e *jx.Encoder) { timestamp(e, code.CreatedAt) })
		})
	})
}

func (h *Handler) analytics(w http.ResponseWriter, _ *http.Request) {
	report := h.engine.Analytics()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeReport(e, report) })
}

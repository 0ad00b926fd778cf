package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quotationRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.POST("/api/quotation/submit", h.SubmitQuotation)
	r.GET("/api/quotation/status/:orderRef", h.GetQuotationStatus)
	return r
}

func TestSubmitQuotationValidation(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := quotationRouter(h)

	for _, body := range []string{
		`{}`,
		`{"customer": {"name": "A", "phone": "91234567"}, "cart": [], "country": "OM"}`,
		`{"customer": {"name": "A"}, "cart": [{"id": 1, "quantity": 1}], "country": "OM"}`,
	} {
		w := postJSON(r, "/api/quotation/submit", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s must be rejected", body)
	}
}

func TestSubmitQuotationCreatesOrder(t *testing.T) {
	var createdOrder map[string]any
	var partnerValues map[string]any

	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch {
		case model == "res.partner" && method == "search_read":
			return []map[string]any{}, nil
		case model == "res.partner" && method == "create":
			partnerValues = args[0].(map[string]any)
			return 11, nil
		case model == "stock.warehouse":
			return []map[string]any{{"id": 3, "name": "Main"}}, nil
		case model == "sale.order" && method == "create":
			createdOrder = args[0].(map[string]any)
			return 500, nil
		case model == "sale.order" && method == "read":
			return []map[string]any{{"id": 500, "name": "S00500"}}, nil
		}
		return nil, assert.AnError
	}}

	h := newTestHandlers(t, rpc)
	r := quotationRouter(h)

	w := postJSON(r, "/api/quotation/submit", `{
		"customer": {"name": "Ahmed", "phone": "+96891234567", "email": "a@example.com"},
		"cart": [{"id": 42, "name": "Tub", "price": 100, "quantity": 2, "variantIds": [80]}],
		"country": "OM"
	}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "S00500", body["quotationName"])
	assert.Contains(t, body["orderRef"], "WEB-")

	assert.Equal(t, "Country: Oman", partnerValues["comment"])

	assert.Equal(t, int64(11), createdOrder["partner_id"])
	assert.Equal(t, int64(3), createdOrder["warehouse_id"])
	lines := createdOrder["order_line"].([]any)
	require.Len(t, lines, 1)
	line := lines[0].([]any)[2].(map[string]any)
	assert.Equal(t, int64(80), line["product_id"])
	assert.Equal(t, 2.0, line["product_uom_qty"])
}

func TestSubmitQuotationUnresolvableCart(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch {
		case model == "res.partner" && method == "search_read":
			return []map[string]any{{"id": 11, "name": "Ahmed", "phone": "+96891234567", "mobile": false, "email": false, "comment": false}}, nil
		case model == "res.partner" && method == "write":
			return true, nil
		case model == "product.product":
			return []map[string]any{}, nil
		}
		return nil, assert.AnError
	}}

	h := newTestHandlers(t, rpc)
	r := quotationRouter(h)

	w := postJSON(r, "/api/quotation/submit", `{
		"customer": {"name": "Ahmed", "phone": "+96891234567"},
		"cart": [{"id": 42, "name": "Tub", "quantity": 1}],
		"country": "OM"
	}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "no valid products")
}

func TestQuotationStatusNotFound(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		return []map[string]any{}, nil
	}}

	h := newTestHandlers(t, rpc)
	r := quotationRouter(h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotation/status/WEB-123", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

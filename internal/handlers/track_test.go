package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bellabath/storefront-api/internal/models"
)

func trackRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/api/track/search", h.TrackSearch)
	r.GET("/api/track/order/:orderId", h.TrackOrder)
	r.GET("/api/track/delivery/:deliveryId", h.TrackDelivery)
	return r
}

func TestTrackSearchQueryTooShort(t *testing.T) {
	h := newTestHandlers(t, &fakeCaller{})
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/search?query=ab", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTrackSearchPhonePartialFailure(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch model {
		case "res.partner":
			return []map[string]any{{"id": 11, "name": "Ahmed", "phone": "+96891234567", "mobile": false, "email": "ahmed@example.com"}}, nil
		case "sale.order":
			return []map[string]any{{
				"id": 100, "name": "S00100", "state": "sale", "date_order": "2024-05-01 10:00:00",
				"amount_total": 250.0, "client_order_ref": "WEB-1", "partner_id": []any{11, "Ahmed"},
				"order_line": []any{1, 2},
			}}, nil
		case "stock.picking":
			return []map[string]any{{
				"id": 200, "name": "WH/OUT/0042", "state": "assigned", "scheduled_date": "2024-05-02 09:00:00",
				"date_done": false, "partner_id": []any{11, "Ahmed"}, "origin": "S00100",
				"move_ids_without_package": []any{5},
			}}, nil
		case "helpdesk.ticket":
			// Module not installed on this Odoo instance
			return nil, errors.New("odoo: helpdesk.ticket.search_read: Object helpdesk.ticket doesn't exist")
		case "repair.order":
			return []map[string]any{}, nil
		}
		return nil, errors.New("unexpected model " + model)
	}}

	h := newTestHandlers(t, rpc)
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/search?query=%2B96891234567", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.TrackSearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	// The helpdesk failure only empties its own section
	assert.True(t, result.Success)
	assert.Equal(t, "phone", result.SearchType)
	assert.Len(t, result.Orders, 1)
	assert.Len(t, result.Deliveries, 1)
	assert.Empty(t, result.Helpdesk)
	assert.Empty(t, result.Repairs)
	assert.Equal(t, 2, result.TotalResults)

	require.NotNil(t, result.Customer)
	assert.Equal(t, "Ahmed", result.Customer.Name)
	assert.Equal(t, "+96891234567", result.Customer.Phone)

	assert.Equal(t, "Sales Order", result.Orders[0].Status)
	assert.Equal(t, "sale", result.Orders[0].StatusKey)
	assert.Equal(t, 2, result.Orders[0].ItemCount)
	assert.Equal(t, "Ready", result.Deliveries[0].Status)
}

func TestTrackSearchReference(t *testing.T) {
	var orderDomain []any
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch model {
		case "sale.order":
			orderDomain = args[0].([]any)
			return []map[string]any{{
				"id": 100, "name": "S00100", "state": "draft", "date_order": "2024-05-01 10:00:00",
				"amount_total": 99.0, "client_order_ref": false, "partner_id": []any{11, "Ahmed"},
				"order_line": false,
			}}, nil
		default:
			return []map[string]any{}, nil
		}
	}}

	h := newTestHandlers(t, rpc)
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/search?query=S00100", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result models.TrackSearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, "reference", result.SearchType)
	assert.Equal(t, "Quotation", result.Orders[0].Status)

	// Free-text searches OR across name, client ref, and origin
	assert.Equal(t, "|", orderDomain[0])
	assert.Equal(t, "|", orderDomain[1])

	// No partner matched, so the customer falls back to the first order
	require.NotNil(t, result.Customer)
	assert.Equal(t, "Ahmed", result.Customer.Name)
}

func TestTrackOrderDetail(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch model {
		case "sale.order":
			return []map[string]any{{
				"id": 100, "name": "S00100", "state": "sale", "date_order": "2024-05-01 10:00:00",
				"amount_total": 120.0, "amount_untaxed": 100.0, "amount_tax": 20.0,
				"client_order_ref": "WEB-1", "partner_id": []any{11, "Ahmed"},
				"order_line": []any{7}, "note": false, "commitment_date": false,
			}}, nil
		case "sale.order.line":
			return []map[string]any{{
				"product_id": []any{42, "Freestanding Tub"}, "name": "line text",
				"product_uom_qty": 2.0, "price_unit": 50.0, "price_subtotal": 100.0,
			}}, nil
		}
		return nil, errors.New("unexpected model " + model)
	}}

	h := newTestHandlers(t, rpc)
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/order/100", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool               `json:"success"`
		Order   models.OrderDetail `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Success)
	assert.Equal(t, 100.0, body.Order.Subtotal)
	assert.Equal(t, 20.0, body.Order.Tax)
	require.Len(t, body.Order.Lines, 1)
	assert.Equal(t, "Freestanding Tub", body.Order.Lines[0].ProductName)
	assert.Equal(t, 2.0, body.Order.Lines[0].Quantity)
}

func TestTrackOrderNotFound(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		return []map[string]any{}, nil
	}}

	h := newTestHandlers(t, rpc)
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/order/999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrackDeliveryDetail(t *testing.T) {
	rpc := &fakeCaller{handle: func(model, method string, args []any, kwargs map[string]any) (any, error) {
		switch model {
		case "stock.picking":
			return []map[string]any{{
				"id": 200, "name": "WH/OUT/0042", "state": "done", "scheduled_date": "2024-05-02 09:00:00",
				"date_done": "2024-05-03 15:00:00", "partner_id": []any{11, "Ahmed"}, "origin": "S00100",
				"move_ids_without_package": []any{5},
			}}, nil
		case "stock.move":
			return []map[string]any{{
				"product_id": []any{42, "Freestanding Tub"}, "name": "move",
				"product_uom_qty": 1.0, "quantity_done": 1.0, "product_uom": []any{1, "Units"},
			}}, nil
		}
		return nil, errors.New("unexpected model " + model)
	}}

	h := newTestHandlers(t, rpc)
	r := trackRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/track/delivery/200", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Delivery models.DeliveryDetail `json:"delivery"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Delivered", body.Delivery.Status)
	require.Len(t, body.Delivery.Lines, 1)
	assert.Equal(t, "Units", body.Delivery.Lines[0].UOM)
}

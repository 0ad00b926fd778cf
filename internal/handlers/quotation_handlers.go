package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/config"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// --- Inputs ---

type QuotationCustomerInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

type QuotationCartItem struct {
	ID         int64   `json:"id" binding:"required"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
	VariantID  int64   `json:"variantId"`
	VariantIDs []int64 `json:"variantIds"`
}

type SubmitQuotationInput struct {
	Customer QuotationCustomerInput `json:"customer" binding:"required"`
	Cart     []QuotationCartItem    `json:"cart" binding:"required,min=1"`
	Country  string                 `json:"country" binding:"required"`
}

// SubmitQuotation handles POST /api/quotation/submit.
// Creates (or finds) the customer and drafts a sale order with a WEB-
// prefixed client reference the customer can track later.
func (h *Handlers) SubmitQuotation(c *gin.Context) {
	var input SubmitQuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name, phone, a non-empty cart and country are required"})
		return
	}

	ctx := c.Request.Context()

	customerID, err := h.findOrCreateCustomer(ctx, input.Customer, input.Country)
	if err != nil {
		h.Log.WithError(err).Error("quotation customer lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quotation", "details": err.Error()})
		return
	}

	orderRef := fmt.Sprintf("WEB-%d", time.Now().UnixMilli())
	quotationID, quotationName, err := h.createQuotation(ctx, customerID, input.Cart, input.Country, orderRef)
	if err != nil {
		h.Log.WithError(err).Error("quotation creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quotation", "details": err.Error()})
		return
	}

	h.Log.WithField("orderRef", orderRef).WithField("quotation", quotationName).Info("quotation submitted")

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"quotationId":   quotationID,
		"quotationName": quotationName,
		"orderRef":      orderRef,
		"message":       "Your quotation request has been submitted successfully!",
	})
}

// findOrCreateCustomer locates a res.partner by any phone spelling
// (preferring an exact match), updating its contact info, or creates a new
// customer record when nothing matches.
func (h *Handlers) findOrCreateCustomer(ctx context.Context, customer QuotationCustomerInput, country string) (int64, error) {
	countryName := config.CountryName(country)
	variants := makePhoneVariants(customer.Phone)

	partners, err := odoo.SearchRead[odoo.PartnerRecord](ctx, h.Odoo, "res.partner",
		partnerPhoneDomain(variants, false),
		map[string]any{"fields": []string{"id", "name", "phone", "mobile", "email", "comment"}, "limit": 5})
	if err != nil {
		return 0, err
	}

	if len(partners) > 0 {
		best := partners[0]
		for _, p := range partners {
			phone, mobile := p.Phone.String(), p.Mobile.String()
			if phone == variants.Clean || mobile == variants.Clean ||
				phone == variants.WithoutPlus || mobile == variants.WithoutPlus ||
				phone == "+"+variants.WithoutPlus || mobile == "+"+variants.WithoutPlus {
				best = p
				break
			}
		}

		values := map[string]any{"comment": "Country: " + countryName}
		if customer.Name != "" {
			values["name"] = customer.Name
		}
		if customer.Email != "" {
			values["email"] = customer.Email
		}
		if err := odoo.WriteRecord(ctx, h.Odoo, "res.partner", []int64{best.ID}, values); err != nil {
			return 0, err
		}
		h.Log.WithField("partnerId", best.ID).Info("found existing customer")
		return best.ID, nil
	}

	partnerID, err := odoo.CreateRecord(ctx, h.Odoo, "res.partner", map[string]any{
		"name":          customer.Name,
		"phone":         customer.Phone,
		"email":         customer.Email,
		"comment":       "Country: " + countryName,
		"customer_rank": 1,
	})
	if err != nil {
		return 0, err
	}
	h.Log.WithField("partnerId", partnerID).Info("created new customer")
	return partnerID, nil
}

// createQuotation resolves every cart line to a product variant and drafts
// the sale order. Lines that cannot resolve are skipped; an entirely
// unresolvable cart is an error.
func (h *Handlers) createQuotation(ctx context.Context, customerID int64, cart []QuotationCartItem, country, orderRef string) (int64, string, error) {
	var orderLines []any
	var failed []string

	for _, item := range cart {
		variantID := item.VariantID
		if variantID == 0 && len(item.VariantIDs) > 0 {
			variantID = item.VariantIDs[0]
		}
		if variantID == 0 {
			// Last resort: look the variant up by template id
			type variantRecord struct {
				ID int64 `json:"id"`
			}
			variants, err := odoo.SearchRead[variantRecord](ctx, h.Odoo, "product.product",
				[]any{[]any{"product_tmpl_id", "=", item.ID}},
				map[string]any{"fields": []string{"id"}, "limit": 1})
			if err != nil {
				h.Log.WithError(err).WithField("productId", item.ID).Warn("variant lookup failed")
			} else if len(variants) > 0 {
				variantID = variants[0].ID
			}
		}

		if variantID == 0 {
			label := item.Name
			if label == "" {
				label = fmt.Sprintf("#%d", item.ID)
			}
			failed = append(failed, label)
			continue
		}

		// Odoo one2many create command: (0, 0, values)
		orderLines = append(orderLines, []any{0, 0, map[string]any{
			"product_id":      variantID,
			"product_uom_qty": item.Quantity,
			"price_unit":      item.Price,
		}})
	}

	if len(orderLines) == 0 {
		return 0, "", fmt.Errorf("no valid products found in cart (failed: %v)", failed)
	}
	if len(failed) > 0 {
		h.Log.WithField("products", failed).Warn("some cart products failed to resolve")
	}

	warehouseID := h.defaultWarehouse(ctx)

	orderID, err := odoo.CreateRecord(ctx, h.Odoo, "sale.order", map[string]any{
		"partner_id":       customerID,
		"order_line":       orderLines,
		"warehouse_id":     warehouseID,
		"state":            "draft",
		"client_order_ref": orderRef,
		"note":             "Website Quotation Request\nCountry: " + config.CountryName(country),
	})
	if err != nil {
		return 0, "", err
	}

	type orderRecord struct {
		Name string `json:"name"`
	}
	orders, err := odoo.ReadRecords[orderRecord](ctx, h.Odoo, "sale.order", []int64{orderID}, []string{"name"})
	if err != nil || len(orders) == 0 {
		// The order exists; a failed read just costs us the display name
		return orderID, "", nil
	}
	return orderID, orders[0].Name, nil
}

// defaultWarehouse picks the first configured warehouse, falling back to
// id 1 when the lookup fails.
func (h *Handlers) defaultWarehouse(ctx context.Context) int64 {
	type warehouseRecord struct {
		ID int64 `json:"id"`
	}
	warehouses, err := odoo.SearchRead[warehouseRecord](ctx, h.Odoo, "stock.warehouse", []any{},
		map[string]any{"fields": []string{"id", "name"}, "limit": 1})
	if err != nil || len(warehouses) == 0 {
		h.Log.Warn("could not fetch warehouse, using default")
		return 1
	}
	return warehouses[0].ID
}

// GetQuotationStatus handles GET /api/quotation/status/:orderRef.
func (h *Handlers) GetQuotationStatus(c *gin.Context) {
	orderRef := c.Param("orderRef")

	type statusRecord struct {
		ID          int64          `json:"id"`
		Name        string         `json:"name"`
		State       string         `json:"state"`
		AmountTotal float64        `json:"amount_total"`
		DateOrder   odoo.OptString `json:"date_order"`
	}
	orders, err := odoo.SearchRead[statusRecord](c.Request.Context(), h.Odoo, "sale.order",
		[]any{[]any{"client_order_ref", "=", orderRef}},
		map[string]any{"fields": []string{"id", "name", "state", "amount_total", "date_order"}, "limit": 1})
	if err != nil {
		h.Log.WithError(err).Error("quotation status lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get quotation status"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "quotation": orders[0]})
}

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// Human-readable labels for the raw Odoo state keys.
var orderStates = map[string]string{
	"draft":  "Quotation",
	"sent":   "Quotation Sent",
	"sale":   "Sales Order",
	"done":   "Completed",
	"cancel": "Cancelled",
}

var deliveryStates = map[string]string{
	"draft":     "Draft",
	"waiting":   "Waiting",
	"confirmed": "Waiting",
	"assigned":  "Ready",
	"done":      "Delivered",
	"cancel":    "Cancelled",
}

var repairStates = map[string]string{
	"draft":          "Draft",
	"confirmed":      "Confirmed",
	"under_repair":   "Under Repair",
	"ready":          "Ready",
	"2binvoiced":     "To be Invoiced",
	"invoice_except": "Invoice Exception",
	"done":           "Completed",
	"cancel":         "Cancelled",
}

func stateLabel(states map[string]string, key string) string {
	if label, ok := states[key]; ok {
		return label
	}
	return key
}

// --- Raw Odoo record shapes ---

type orderRecord struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	State          string         `json:"state"`
	DateOrder      odoo.OptString `json:"date_order"`
	AmountTotal    float64        `json:"amount_total"`
	AmountUntaxed  float64        `json:"amount_untaxed"`
	AmountTax      float64        `json:"amount_tax"`
	ClientOrderRef odoo.OptString `json:"client_order_ref"`
	PartnerID      odoo.Many2One  `json:"partner_id"`
	OrderLines     odoo.IDList    `json:"order_line"`
	Note           odoo.OptString `json:"note"`
	CommitmentDate odoo.OptString `json:"commitment_date"`
}

type pickingRecord struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	State         string         `json:"state"`
	ScheduledDate odoo.OptString `json:"scheduled_date"`
	DateDone      odoo.OptString `json:"date_done"`
	PartnerID     odoo.Many2One  `json:"partner_id"`
	Origin        odoo.OptString `json:"origin"`
	MoveIDs       odoo.IDList    `json:"move_ids_without_package"`
}

type ticketRecord struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	TicketRef  odoo.OptString `json:"ticket_ref"`
	StageID    odoo.Many2One  `json:"stage_id"`
	CreateDate odoo.OptString `json:"create_date"`
	PartnerID  odoo.Many2One  `json:"partner_id"`
	Priority   odoo.OptString `json:"priority"`
}

type repairRecord struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	State       string         `json:"state"`
	CreateDate  odoo.OptString `json:"create_date"`
	PartnerID   odoo.Many2One  `json:"partner_id"`
	ProductID   odoo.Many2One  `json:"product_id"`
	AmountTotal float64        `json:"amount_total"`
}

func partnerName(m odoo.Many2One) string {
	if m.Valid {
		return m.Name
	}
	return "Unknown"
}

// TrackSearch handles GET /api/track/search.
// A phone-looking query resolves to a customer first and scopes every
// record type to them; anything else is a free-text reference search. The
// four sub-searches are isolated on purpose: a missing helpdesk or repair
// module leaves that section empty and the rest intact.
func (h *Handlers) TrackSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if len(query) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide at least 3 characters to search"})
		return
	}

	ctx := c.Request.Context()
	result := models.TrackSearchResult{
		Success:    true,
		Query:      query,
		SearchType: "reference",
		Orders:     []models.OrderSummary{},
		Deliveries: []models.DeliverySummary{},
		Helpdesk:   []models.TicketSummary{},
		Repairs:    []models.RepairSummary{},
	}

	var partnerID int64
	if looksLikePhone(query) {
		result.SearchType = "phone"
		variants := makePhoneVariants(query)

		partners, err := odoo.SearchRead[odoo.PartnerRecord](ctx, h.Odoo, "res.partner",
			partnerPhoneDomain(variants, true),
			map[string]any{"fields": []string{"id", "name", "phone", "mobile", "email"}, "limit": 5})
		if err != nil {
			h.Log.WithError(err).Error("track partner search failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search records", "details": err.Error()})
			return
		}

		if len(partners) > 0 {
			partnerID = partners[0].ID
			phone := partners[0].Phone.String()
			if phone == "" {
				phone = partners[0].Mobile.String()
			}
			result.Customer = &models.TrackCustomer{
				Name:  partners[0].Name,
				Phone: phone,
				Email: partners[0].Email.String(),
			}
		}
	}

	// Sale orders are the primary record type; a failure here still only
	// empties its own section.
	if orders, err := h.searchOrders(ctx, partnerID, query); err != nil {
		h.Log.WithError(err).Warn("order search failed")
	} else {
		result.Orders = orders
	}

	if deliveries, err := h.searchDeliveries(ctx, partnerID, query); err != nil {
		h.Log.WithError(err).Warn("delivery search failed")
	} else {
		result.Deliveries = deliveries
	}

	if tickets, err := h.searchTickets(ctx, partnerID, query); err != nil {
		// Helpdesk module is optional on many installs
		h.Log.WithError(err).Warn("helpdesk search failed")
	} else {
		result.Helpdesk = tickets
	}

	if repairs, err := h.searchRepairs(ctx, partnerID, query); err != nil {
		h.Log.WithError(err).Warn("repair search failed")
	} else {
		result.Repairs = repairs
	}

	if result.Customer == nil && len(result.Orders) > 0 {
		result.Customer = &models.TrackCustomer{Name: result.Orders[0].CustomerName}
	}
	result.TotalResults = len(result.Orders) + len(result.Deliveries) + len(result.Helpdesk) + len(result.Repairs)

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) searchOrders(ctx context.Context, partnerID int64, query string) ([]models.OrderSummary, error) {
	var domain []any
	if partnerID != 0 {
		domain = []any{[]any{"partner_id", "=", partnerID}}
	} else {
		domain = orDomain(
			[]any{"name", "ilike", query},
			[]any{"client_order_ref", "ilike", query},
			[]any{"origin", "ilike", query},
		)
	}

	records, err := odoo.SearchRead[orderRecord](ctx, h.Odoo, "sale.order", domain, map[string]any{
		"fields": []string{"id", "name", "state", "date_order", "amount_total", "client_order_ref", "partner_id", "order_line"},
		"order":  "date_order desc",
		"limit":  20,
	})
	if err != nil {
		return nil, err
	}

	orders := make([]models.OrderSummary, len(records))
	for i, rec := range records {
		orders[i] = models.OrderSummary{
			ID:           rec.ID,
			Reference:    rec.Name,
			ClientRef:    rec.ClientOrderRef.String(),
			Status:       stateLabel(orderStates, rec.State),
			StatusKey:    rec.State,
			Date:         rec.DateOrder.String(),
			Total:        rec.AmountTotal,
			CustomerName: partnerName(rec.PartnerID),
			ItemCount:    len(rec.OrderLines),
		}
	}
	return orders, nil
}

func (h *Handlers) searchDeliveries(ctx context.Context, partnerID int64, query string) ([]models.DeliverySummary, error) {
	var domain []any
	if partnerID != 0 {
		domain = []any{
			[]any{"partner_id", "=", partnerID},
			[]any{"picking_type_code", "=", "outgoing"},
		}
	} else {
		domain = []any{
			"&", []any{"picking_type_code", "=", "outgoing"},
			"|", []any{"name", "ilike", query}, []any{"origin", "ilike", query},
		}
	}

	records, err := odoo.SearchRead[pickingRecord](ctx, h.Odoo, "stock.picking", domain, map[string]any{
		"fields": []string{"id", "name", "state", "scheduled_date", "date_done", "partner_id", "origin", "move_ids_without_package"},
		"order":  "scheduled_date desc",
		"limit":  20,
	})
	if err != nil {
		return nil, err
	}

	deliveries := make([]models.DeliverySummary, len(records))
	for i, rec := range records {
		deliveries[i] = models.DeliverySummary{
			ID:            rec.ID,
			Reference:     rec.Name,
			Origin:        rec.Origin.String(),
			Status:        stateLabel(deliveryStates, rec.State),
			StatusKey:     rec.State,
			ScheduledDate: rec.ScheduledDate.String(),
			DoneDate:      rec.DateDone.String(),
			CustomerName:  partnerName(rec.PartnerID),
			ItemCount:     len(rec.MoveIDs),
		}
	}
	return deliveries, nil
}

func (h *Handlers) searchTickets(ctx context.Context, partnerID int64, query string) ([]models.TicketSummary, error) {
	var domain []any
	if partnerID != 0 {
		domain = []any{[]any{"partner_id", "=", partnerID}}
	} else {
		domain = orDomain(
			[]any{"name", "ilike", query},
			[]any{"ticket_ref", "ilike", query},
		)
	}

	records, err := odoo.SearchRead[ticketRecord](ctx, h.Odoo, "helpdesk.ticket", domain, map[string]any{
		"fields": []string{"id", "name", "ticket_ref", "stage_id", "create_date", "partner_id", "priority"},
		"order":  "create_date desc",
		"limit":  20,
	})
	if err != nil {
		return nil, err
	}

	tickets := make([]models.TicketSummary, len(records))
	for i, rec := range records {
		reference := rec.TicketRef.String()
		if reference == "" {
			reference = "#" + strconv.FormatInt(rec.ID, 10)
		}
		status := "Unknown"
		if rec.StageID.Valid {
			status = rec.StageID.Name
		}
		priority := rec.Priority.String()
		if priority == "" {
			priority = "0"
		}
		tickets[i] = models.TicketSummary{
			ID:           rec.ID,
			Reference:    reference,
			Subject:      rec.Name,
			Status:       status,
			Date:         rec.CreateDate.String(),
			CustomerName: partnerName(rec.PartnerID),
			Priority:     priority,
		}
	}
	return tickets, nil
}

func (h *Handlers) searchRepairs(ctx context.Context, partnerID int64, query string) ([]models.RepairSummary, error) {
	var domain []any
	if partnerID != 0 {
		domain = []any{[]any{"partner_id", "=", partnerID}}
	} else {
		domain = []any{[]any{"name", "ilike", query}}
	}

	records, err := odoo.SearchRead[repairRecord](ctx, h.Odoo, "repair.order", domain, map[string]any{
		"fields": []string{"id", "name", "state", "create_date", "partner_id", "product_id", "amount_total"},
		"order":  "create_date desc",
		"limit":  20,
	})
	if err != nil {
		return nil, err
	}

	repairs := make([]models.RepairSummary, len(records))
	for i, rec := range records {
		product := "Unknown"
		if rec.ProductID.Valid {
			product = rec.ProductID.Name
		}
		repairs[i] = models.RepairSummary{
			ID:           rec.ID,
			Reference:    rec.Name,
			Status:       stateLabel(repairStates, rec.State),
			StatusKey:    rec.State,
			Date:         rec.CreateDate.String(),
			CustomerName: partnerName(rec.PartnerID),
			Product:      product,
			Total:        rec.AmountTotal,
		}
	}
	return repairs, nil
}

// TrackOrder handles GET /api/track/order/:orderId.
func (h *Handlers) TrackOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	ctx := c.Request.Context()

	orders, err := odoo.ReadRecords[orderRecord](ctx, h.Odoo, "sale.order", []int64{orderID},
		[]string{"id", "name", "state", "date_order", "amount_total", "amount_untaxed", "amount_tax",
			"client_order_ref", "partner_id", "order_line", "note", "commitment_date"})
	if err != nil {
		h.Log.WithError(err).Error("order detail fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order details"})
		return
	}
	if len(orders) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	order := orders[0]

	lines := []models.OrderLine{}
	if len(order.OrderLines) > 0 {
		type lineRecord struct {
			ProductID     odoo.Many2One `json:"product_id"`
			Name          string        `json:"name"`
			ProductUomQty float64       `json:"product_uom_qty"`
			PriceUnit     float64       `json:"price_unit"`
			PriceSubtotal float64       `json:"price_subtotal"`
		}
		records, err := odoo.ReadRecords[lineRecord](ctx, h.Odoo, "sale.order.line", order.OrderLines,
			[]string{"product_id", "name", "product_uom_qty", "price_unit", "price_subtotal"})
		if err != nil {
			h.Log.WithError(err).Warn("order line fetch failed")
		} else {
			for _, rec := range records {
				name := rec.Name
				if rec.ProductID.Valid {
					name = rec.ProductID.Name
				}
				lines = append(lines, models.OrderLine{
					ProductName: name,
					Quantity:    rec.ProductUomQty,
					UnitPrice:   rec.PriceUnit,
					Subtotal:    rec.PriceSubtotal,
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": models.OrderDetail{
			ID:           order.ID,
			Reference:    order.Name,
			ClientRef:    order.ClientOrderRef.String(),
			Status:       stateLabel(orderStates, order.State),
			StatusKey:    order.State,
			Date:         order.DateOrder.String(),
			ExpectedDate: order.CommitmentDate.String(),
			Subtotal:     order.AmountUntaxed,
			Tax:          order.AmountTax,
			Total:        order.AmountTotal,
			CustomerName: partnerName(order.PartnerID),
			Note:         order.Note.String(),
			Lines:        lines,
		},
	})
}

// TrackDelivery handles GET /api/track/delivery/:deliveryId.
func (h *Handlers) TrackDelivery(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("deliveryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery id"})
		return
	}
	ctx := c.Request.Context()

	deliveries, err := odoo.ReadRecords[pickingRecord](ctx, h.Odoo, "stock.picking", []int64{deliveryID},
		[]string{"id", "name", "state", "scheduled_date", "date_done", "partner_id", "origin", "move_ids_without_package"})
	if err != nil {
		h.Log.WithError(err).Error("delivery detail fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch delivery details"})
		return
	}
	if len(deliveries) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}
	delivery := deliveries[0]

	lines := []models.DeliveryLine{}
	if len(delivery.MoveIDs) > 0 {
		type moveRecord struct {
			ProductID     odoo.Many2One `json:"product_id"`
			Name          string        `json:"name"`
			ProductUomQty float64       `json:"product_uom_qty"`
			QuantityDone  odoo.OptFloat `json:"quantity_done"`
			ProductUom    odoo.Many2One `json:"product_uom"`
		}
		records, err := odoo.ReadRecords[moveRecord](ctx, h.Odoo, "stock.move", delivery.MoveIDs,
			[]string{"product_id", "name", "product_uom_qty", "quantity_done", "product_uom"})
		if err != nil {
			h.Log.WithError(err).Warn("delivery move fetch failed")
		} else {
			for _, rec := range records {
				name := rec.Name
				if rec.ProductID.Valid {
					name = rec.ProductID.Name
				}
				uom := "Units"
				if rec.ProductUom.Valid {
					uom = rec.ProductUom.Name
				}
				lines = append(lines, models.DeliveryLine{
					ProductName:  name,
					Quantity:     rec.ProductUomQty,
					QuantityDone: float64(rec.QuantityDone),
					UOM:          uom,
				})
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"delivery": models.DeliveryDetail{
			ID:            delivery.ID,
			Reference:     delivery.Name,
			Origin:        delivery.Origin.String(),
			Status:        stateLabel(deliveryStates, delivery.State),
			StatusKey:     delivery.State,
			ScheduledDate: delivery.ScheduledDate.String(),
			DoneDate:      delivery.DateDone.String(),
			CustomerName:  partnerName(delivery.PartnerID),
			Lines:         lines,
		},
	})
}

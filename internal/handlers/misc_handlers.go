package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// Health handles GET /api/health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// GetRibbons handles GET /api/ribbons. Ribbons change rarely, so they get
// the longest cache window.
func (h *Handlers) GetRibbons(c *gin.Context) {
	ribbons, err := fetchThroughCache(h.Cache.Ribbons, func() ([]models.Ribbon, error) {
		records, err := odoo.SearchRead[odoo.RibbonRecord](c.Request.Context(), h.Odoo, "product.ribbon",
			[]any{}, map[string]any{"fields": []string{"id", "name", "html", "bg_color", "text_color"}})
		if err != nil {
			return nil, err
		}
		ribbons := make([]models.Ribbon, len(records))
		for i, rec := range records {
			ribbons[i] = models.Ribbon{
				ID:        rec.ID,
				Name:      rec.Name,
				HTML:      rec.HTML.String(),
				BgColor:   rec.BgColor.String(),
				TextColor: rec.TextColor.String(),
			}
		}
		return ribbons, nil
	})
	if err != nil {
		h.Log.WithError(err).Error("ribbon fetch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ribbons"})
		return
	}
	c.JSON(http.StatusOK, ribbons)
}

// SubmitContact handles POST /api/contact, filing the inquiry as a CRM lead.
func (h *Handlers) SubmitContact(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	leadID, err := odoo.CreateRecord(c.Request.Context(), h.Odoo, "crm.lead", map[string]any{
		"name":         fmt.Sprintf("Website Inquiry: %s", input.Name),
		"contact_name": input.Name,
		"email_from":   input.Email,
		"phone":        input.Phone,
		"description":  input.Message,
		"type":         "lead",
	})
	if err != nil {
		h.Log.WithError(err).Error("lead create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit contact form"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leadId": leadID})
}

// ClearCache handles POST /api/cache/clear.
func (h *Handlers) ClearCache(c *gin.Context) {
	h.Cache.ClearAll()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cache cleared"})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// SearchProducts handles GET /api/search.
// All filters combine into a single Odoo domain, so the ERP does the
// actual filtering. We never page through the catalog locally.
func (h *Handlers) SearchProducts(c *gin.Context) {
	domain := []any{}

	if q := c.Query("q"); q != "" {
		domain = append(domain, []any{"name", "ilike", q})
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			domain = append(domain, []any{"list_price", ">=", v})
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			domain = append(domain, []any{"list_price", "<=", v})
		}
	}
	if category := c.Query("category"); category != "" {
		domain = append(domain, []any{"categ_id.name", "=", category})
	}

	order := "name asc"
	switch c.Query("sort") {
	case "price-low":
		order = "list_price asc"
	case "price-high":
		order = "list_price desc"
	}

	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template", domain,
		map[string]any{"fields": productListFields, "limit": 100, "order": order})
	if err != nil {
		h.Log.WithError(err).Error("product search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	products := make([]models.Product, len(records))
	for i, rec := range records {
		products[i] = h.Transform.Product(rec)
	}
	c.JSON(http.StatusOK, products)
}

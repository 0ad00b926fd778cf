package handlers

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/catalog"
	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// Field sets requested from Odoo. The listing set is what the grids need;
// the detail set adds the related-product links and long descriptions.
var productListFields = []string{
	"id", "name", "list_price", "categ_id",
	"description_sale", "default_code", "qty_available", "website_url",
	"public_categ_ids", "website_ribbon_id",
	"allow_out_of_stock_order", "show_availability", "available_threshold",
	"product_template_image_ids", "product_variant_ids",
}

var productDetailFields = []string{
	"id", "name", "list_price", "categ_id",
	"description_sale", "default_code", "qty_available", "website_url",
	"public_categ_ids",
	"accessory_product_ids", "alternative_product_ids",
	"website_ribbon_id",
	"allow_out_of_stock_order", "out_of_stock_message",
	"show_availability", "available_threshold",
	"website_description", "product_template_image_ids",
	"product_variant_ids", "barcode",
}

const publishedOnly = true

// GetProducts handles GET /api/products.
// The full default query (no offset, limit >= 500) is the one that gets
// cached; narrower queries always go to Odoo.
func (h *Handlers) GetProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "500"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 500
	}

	if offset == 0 && limit >= 500 {
		if cached, ok := h.Cache.Products.Read(); ok {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template",
		[]any{[]any{"is_published", "=", publishedOnly}},
		map[string]any{
			"fields": productListFields,
			"limit":  limit,
			"offset": offset,
			"order":  "name asc",
		})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products", "details": err.Error()})
		return
	}

	products := make([]models.Product, len(records))
	for i, rec := range records {
		products[i] = h.Transform.Product(rec)
	}

	if offset == 0 && limit >= 500 {
		h.Cache.Products.Write(products)
	}

	c.JSON(http.StatusOK, products)
}

// GetProductsByCategory handles GET /api/products/category/:categoryId.
func (h *Handlers) GetProductsByCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	h.listProducts(c, []any{
		[]any{"categ_id", "=", categoryID},
		[]any{"is_published", "=", publishedOnly},
	})
}

// GetProductsByPublicCategory handles GET /api/products/public-category/:categoryId.
func (h *Handlers) GetProductsByPublicCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	h.listProducts(c, []any{
		[]any{"public_categ_ids", "in", []int64{categoryID}},
		[]any{"is_published", "=", publishedOnly},
	})
}

// listProducts runs a category-scoped listing query.
func (h *Handlers) listProducts(c *gin.Context, domain []any) {
	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template", domain,
		map[string]any{"fields": productListFields, "limit": 100})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch products by category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	products := make([]models.Product, len(records))
	for i, rec := range records {
		products[i] = h.Transform.Product(rec)
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template",
		[]any{[]any{"id", "=", productID}},
		map[string]any{"fields": productListFields})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, h.Transform.Product(records[0]))
}

// GetProductBySlug handles GET /api/products/by-slug/:slug.
// The slug carries the product id as its trailing -<id> segment; after the
// main fetch each enrichment (gallery, accessories, alternatives,
// documents) is wrapped independently so a failing lookup just yields an
// empty list instead of sinking the whole response.
func (h *Handlers) GetProductBySlug(c *gin.Context) {
	productID, ok := catalog.ExtractIDFromSlug(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product slug format"})
		return
	}

	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template",
		[]any{[]any{"id", "=", productID}},
		map[string]any{"fields": productDetailFields})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch product by slug")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product := h.Transform.Product(records[0])
	product.AdditionalImages = h.fetchAdditionalImages(c, product.AdditionalImageIDs)
	product.AccessoryProducts = h.fetchRelated(c, product.AccessoryProductIDs)
	product.AlternativeProducts = h.fetchRelated(c, product.AlternativeProductIDs)
	product.Documents = h.fetchDocuments(c, product.ID)

	c.JSON(http.StatusOK, product)
}

func (h *Handlers) fetchAdditionalImages(c *gin.Context, imageIDs []int64) []models.ProductImage {
	images := []models.ProductImage{}
	if len(imageIDs) == 0 {
		return images
	}

	type imageRecord struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	records, err := odoo.SearchRead[imageRecord](c.Request.Context(), h.Odoo, "product.image",
		[]any{[]any{"id", "in", imageIDs}},
		map[string]any{"fields": []string{"id", "name"}})
	if err != nil {
		h.Log.WithError(err).Warn("additional image lookup failed")
		return images
	}

	for _, rec := range records {
		images = append(images, models.ProductImage{
			ID:   rec.ID,
			Name: rec.Name,
			URL:  h.Transform.ProductImageURL(rec.ID),
		})
	}
	return images
}

func (h *Handlers) fetchRelated(c *gin.Context, productIDs []int64) []models.RelatedProduct {
	related := []models.RelatedProduct{}
	if len(productIDs) == 0 {
		return related
	}

	type basicRecord struct {
		ID         int64          `json:"id"`
		Name       string         `json:"name"`
		ListPrice  float64        `json:"list_price"`
		WebsiteURL odoo.OptString `json:"website_url"`
	}
	records, err := odoo.SearchRead[basicRecord](c.Request.Context(), h.Odoo, "product.template",
		[]any{
			[]any{"id", "in", productIDs},
			[]any{"is_published", "=", publishedOnly},
		},
		map[string]any{"fields": []string{"id", "name", "list_price", "website_url"}, "limit": 20})
	if err != nil {
		h.Log.WithError(err).Warn("related product lookup failed")
		return related
	}

	for _, rec := range records {
		related = append(related, h.Transform.Related(rec.ID, rec.Name, rec.ListPrice, rec.WebsiteURL.String()))
	}
	return related
}

func (h *Handlers) fetchDocuments(c *gin.Context, productID int64) []models.ProductDocument {
	docs := []models.ProductDocument{}

	type docRecord struct {
		ID           int64         `json:"id"`
		Name         string        `json:"name"`
		AttachmentID odoo.Many2One `json:"ir_attachment_id"`
	}
	records, err := odoo.SearchRead[docRecord](c.Request.Context(), h.Odoo, "product.document",
		[]any{[]any{"res_id", "=", productID}, []any{"res_model", "=", "product.template"}},
		map[string]any{"fields": []string{"id", "name", "ir_attachment_id"}})
	if err != nil {
		// product.document doesn't exist on every Odoo install
		h.Log.WithError(err).Warn("document lookup failed")
		return docs
	}

	for _, rec := range records {
		doc := models.ProductDocument{ID: rec.ID, Name: rec.Name}
		if rec.AttachmentID.Valid {
			doc.URL = h.Transform.AttachmentURL(rec.AttachmentID.ID)
		}
		docs = append(docs, doc)
	}
	return docs
}

// GetBestsellers handles GET /api/products/popular/bestsellers.
// "Popular" is approximated by recent write activity on in-stock products.
func (h *Handlers) GetBestsellers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	h.listPopular(c, []any{
		[]any{"is_published", "=", publishedOnly},
		[]any{"qty_available", ">", 0},
	}, "write_date desc", limit)
}

// GetNewArrivals handles GET /api/products/popular/new-arrivals.
func (h *Handlers) GetNewArrivals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))

	h.listPopular(c, []any{
		[]any{"is_published", "=", publishedOnly},
	}, "create_date desc", limit)
}

func (h *Handlers) listPopular(c *gin.Context, domain []any, order string, limit int) {
	if limit <= 0 {
		limit = 8
	}

	records, err := odoo.SearchRead[odoo.ProductRecord](c.Request.Context(), h.Odoo, "product.template", domain,
		map[string]any{"fields": productListFields, "limit": limit, "order": order})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch popular products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch popular products"})
		return
	}

	products := make([]models.Product, len(records))
	for i, rec := range records {
		products[i] = h.Transform.Product(rec)
	}
	c.JSON(http.StatusOK, products)
}

// GetRandomFromCategory handles GET /api/products/random-from-category/:categoryId.
// Over-fetches, shuffles, and trims so the strip varies between visits.
func (h *Handlers) GetRandomFromCategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}
	excludeID, _ := strconv.ParseInt(c.DefaultQuery("exclude", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "8"))
	if limit <= 0 {
		limit = 8
	}

	type basicRecord struct {
		ID         int64          `json:"id"`
		Name       string         `json:"name"`
		ListPrice  float64        `json:"list_price"`
		WebsiteURL odoo.OptString `json:"website_url"`
	}
	records, err := odoo.SearchRead[basicRecord](c.Request.Context(), h.Odoo, "product.template",
		[]any{
			[]any{"public_categ_ids", "in", []int64{categoryID}},
			[]any{"is_published", "=", publishedOnly},
			[]any{"qty_available", ">", 0},
			[]any{"id", "!=", excludeID},
		},
		map[string]any{
			"fields": []string{"id", "name", "list_price", "website_url"},
			"limit":  limit * 3,
			"order":  "id asc",
		})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch random products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch random products"})
		return
	}

	rand.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
	if len(records) > limit {
		records = records[:limit]
	}

	result := make([]models.RelatedProduct, len(records))
	for i, rec := range records {
		result[i] = h.Transform.Related(rec.ID, rec.Name, rec.ListPrice, rec.WebsiteURL.String())
	}
	c.JSON(http.StatusOK, result)
}

// DownloadProductDocument handles GET /api/products/document/:attachmentId.
// Streams the attachment payload through so the Odoo instance never has to
// be reachable from the browser.
func (h *Handlers) DownloadProductDocument(c *gin.Context) {
	attachmentID, err := strconv.ParseInt(c.Param("attachmentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment id"})
		return
	}

	attachments, err := odoo.SearchRead[odoo.AttachmentRecord](c.Request.Context(), h.Odoo, "ir.attachment",
		[]any{[]any{"id", "=", attachmentID}},
		map[string]any{"fields": []string{"name", "mimetype", "datas"}})
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download document"})
		return
	}
	if len(attachments) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	attachment := attachments[0]
	data, err := base64.StdEncoding.DecodeString(attachment.Datas)
	if err != nil {
		h.Log.WithError(err).Error("failed to decode document payload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to download document"})
		return
	}

	mimetype := attachment.Mimetype.String()
	if mimetype == "" {
		mimetype = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.Name))
	c.Data(http.StatusOK, mimetype, data)
}

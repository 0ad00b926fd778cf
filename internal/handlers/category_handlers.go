package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bellabath/storefront-api/internal/cache"
	"github.com/bellabath/storefront-api/internal/catalog"
	"github.com/bellabath/storefront-api/internal/models"
)

// Category endpoints all run through the aggregator on a cache miss; the
// tree variants reuse the cached flat list so building the tree never
// costs extra Odoo calls.

// GetCategories handles GET /api/categories.
func (h *Handlers) GetCategories(c *gin.Context) {
	cats, err := h.internalCategories(c)
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GetCategoryTree handles GET /api/categories/tree.
func (h *Handlers) GetCategoryTree(c *gin.Context) {
	cats, err := h.internalCategories(c)
	if err != nil {
		h.Log.WithError(err).Error("failed to build category tree")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build category tree"})
		return
	}
	c.JSON(http.StatusOK, catalog.BuildTree(cats))
}

// GetPublicCategories handles GET /api/categories/public.
func (h *Handlers) GetPublicCategories(c *gin.Context) {
	cats, err := h.publicCategories(c)
	if err != nil {
		h.Log.WithError(err).Error("failed to fetch public categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch public categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GetPublicCategoryTree handles GET /api/categories/public/tree.
func (h *Handlers) GetPublicCategoryTree(c *gin.Context) {
	cats, err := h.publicCategories(c)
	if err != nil {
		h.Log.WithError(err).Error("failed to build public category tree")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build public category tree"})
		return
	}
	c.JSON(http.StatusOK, catalog.BuildTree(cats))
}

func (h *Handlers) internalCategories(c *gin.Context) ([]models.Category, error) {
	return fetchThroughCache(h.Cache.Categories, func() ([]models.Category, error) {
		return h.Aggregator.FetchInternal(c.Request.Context())
	})
}

func (h *Handlers) publicCategories(c *gin.Context) ([]models.Category, error) {
	return fetchThroughCache(h.Cache.PublicCategories, func() ([]models.Category, error) {
		return h.Aggregator.FetchPublic(c.Request.Context())
	})
}

// fetchThroughCache returns the slot's payload when fresh, otherwise runs
// fetch and caches the result. A failed fetch leaves any stale data in
// place untouched.
func fetchThroughCache[T any](slot *cache.Slot[T], fetch func() (T, error)) (T, error) {
	if cached, ok := slot.Read(); ok {
		return cached, nil
	}

	data, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}
	slot.Write(data)
	return data, nil
}

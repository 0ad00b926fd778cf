package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bellabath/storefront-api/internal/images"
	"github.com/bellabath/storefront-api/internal/siteconfig"
)

const maxUploadSize = 20 << 20 // 20MB

// GetSiteConfig handles GET /api/admin/config. The read is public; only
// mutations sit behind admin auth.
func (h *Handlers) GetSiteConfig(c *gin.Context) {
	cfg, err := h.SiteConfig.Read()
	if err != nil {
		h.Log.WithError(err).Error("site config read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PutSiteConfig handles PUT /api/admin/config, replacing the whole document.
func (h *Handlers) PutSiteConfig(c *gin.Context) {
	var cfg siteconfig.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid config body"})
		return
	}

	saved, err := h.SiteConfig.Write(cfg)
	if err != nil {
		h.Log.WithError(err).Error("site config write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "config": saved})
}

// PatchSiteConfigSection handles PATCH /api/admin/config/:section, merging
// the request body into one top-level section. The merge happens on the
// raw JSON shape so map sections gain keys instead of being replaced.
func (h *Handlers) PatchSiteConfigSection(c *gin.Context) {
	section := c.Param("section")

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patch body"})
		return
	}

	cfg, err := h.SiteConfig.Read()
	if err != nil {
		h.Log.WithError(err).Error("site config read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config section"})
		return
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config section"})
		return
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config section"})
		return
	}

	existing, ok := doc[section].(map[string]any)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Section '%s' not found", section)})
		return
	}
	for k, v := range patch {
		existing[k] = v
	}
	doc[section] = existing

	merged, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config section"})
		return
	}
	var next siteconfig.Config
	if err := json.Unmarshal(merged, &next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid data for section '%s'", section)})
		return
	}

	if _, err := h.SiteConfig.Write(next); err != nil {
		h.Log.WithError(err).Error("site config write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config section"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "section": section, "data": existing})
}

// AdminLogin handles POST /api/admin/login. The password doubles as the
// bearer token the admin frontend sends on every mutation.
func (h *Handlers) AdminLogin(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Password != h.Cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": h.Cfg.AdminPassword})
}

// UploadImage handles POST /api/admin/upload: multipart image, optional
// "folder" field routing the file under the images dir. After saving we
// derive responsive variants; a processing failure keeps the raw upload.
func (h *Handlers) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be smaller than 20MB"})
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images allowed"})
		return
	}

	folder := filepath.Base(c.DefaultPostForm("folder", "uploads"))
	dir := filepath.Join(h.Cfg.ImagesDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.Log.WithError(err).Error("upload dir create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	base := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	filename := base + ext
	savedPath := filepath.Join(dir, filename)
	if err := c.SaveUploadedFile(file, savedPath); err != nil {
		h.Log.WithError(err).Error("upload save failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	variants := map[string]string{}
	if result, err := images.Process(savedPath, base); err != nil {
		// Serve the raw upload when processing can't
		h.Log.WithError(err).Warn("image variant processing failed")
	} else {
		filename = result.MainImage
		for name, f := range result.Variants {
			variants[name] = "/images/" + folder + "/" + f
		}
	}

	imagePath := "/images/" + folder + "/" + filename
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"path":     imagePath,
		"url":      imagePath,
		"filename": filename,
		"variants": variants,
	})
}

// GetCategoryImages handles GET /api/admin/category-images.
func (h *Handlers) GetCategoryImages(c *gin.Context) {
	cfg, err := h.SiteConfig.Read()
	if err != nil {
		h.Log.WithError(err).Error("site config read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read category images"})
		return
	}
	if cfg.CategoryImages == nil {
		cfg.CategoryImages = map[string]string{}
	}
	c.JSON(http.StatusOK, cfg.CategoryImages)
}

// PutCategoryImage handles PUT /api/admin/category-images/:categoryId.
func (h *Handlers) PutCategoryImage(c *gin.Context) {
	categoryID := c.Param("categoryId")

	var input struct {
		ImageURL string            `json:"imageUrl"`
		Variants map[string]string `json:"variants"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	_, err := h.SiteConfig.Update(func(cfg *siteconfig.Config) {
		if cfg.CategoryImages == nil {
			cfg.CategoryImages = map[string]string{}
		}
		cfg.CategoryImages[categoryID] = input.ImageURL
		if len(input.Variants) > 0 {
			if cfg.CategoryImageVariants == nil {
				cfg.CategoryImageVariants = map[string]map[string]string{}
			}
			cfg.CategoryImageVariants[categoryID] = input.Variants
		}
	})
	if err != nil {
		h.Log.WithError(err).Error("category image update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categoryId": categoryID, "imageUrl": input.ImageURL})
}

// DeleteCategoryImage handles DELETE /api/admin/category-images/:categoryId.
func (h *Handlers) DeleteCategoryImage(c *gin.Context) {
	categoryID := c.Param("categoryId")

	_, err := h.SiteConfig.Update(func(cfg *siteconfig.Config) {
		delete(cfg.CategoryImages, categoryID)
		delete(cfg.CategoryImageVariants, categoryID)
	})
	if err != nil {
		h.Log.WithError(err).Error("category image delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categoryId": categoryID})
}

// GetHeroImages handles GET /api/admin/hero-images. An unconfigured site
// falls back to the stock carousel.
func (h *Handlers) GetHeroImages(c *gin.Context) {
	cfg, err := h.SiteConfig.Read()
	if err != nil {
		h.Log.WithError(err).Error("site config read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read hero images"})
		return
	}
	if len(cfg.HeroImages) == 0 {
		c.JSON(http.StatusOK, siteconfig.DefaultHeroImages)
		return
	}
	c.JSON(http.StatusOK, cfg.HeroImages)
}

// PutHeroImage handles PUT /api/admin/hero-images/:index. Indexes past the
// current end grow the list with empty slides.
func (h *Handlers) PutHeroImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hero image index"})
		return
	}

	var input struct {
		URL      string            `json:"url"`
		Alt      string            `json:"alt"`
		Variants map[string]string `json:"variants"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	_, err = h.SiteConfig.Update(func(cfg *siteconfig.Config) {
		if len(cfg.HeroImages) == 0 {
			cfg.HeroImages = append([]siteconfig.HeroImage(nil), siteconfig.DefaultHeroImages...)
		}
		for len(cfg.HeroImages) <= index {
			cfg.HeroImages = append(cfg.HeroImages, siteconfig.HeroImage{})
		}
		alt := input.Alt
		if alt == "" {
			alt = cfg.HeroImages[index].Alt
		}
		if alt == "" {
			alt = fmt.Sprintf("Hero Image %d", index+1)
		}
		cfg.HeroImages[index] = siteconfig.HeroImage{URL: input.URL, Alt: alt, Variants: input.Variants}
	})
	if err != nil {
		h.Log.WithError(err).Error("hero image update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hero image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "index": index, "url": input.URL})
}

// DeleteHeroImage handles DELETE /api/admin/hero-images/:index.
func (h *Handlers) DeleteHeroImage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hero image index"})
		return
	}

	outOfRange := false
	_, err = h.SiteConfig.Update(func(cfg *siteconfig.Config) {
		if index >= len(cfg.HeroImages) {
			outOfRange = true
			return
		}
		cfg.HeroImages = append(cfg.HeroImages[:index], cfg.HeroImages[index+1:]...)
	})
	if err != nil {
		h.Log.WithError(err).Error("hero image delete failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hero image"})
		return
	}
	if outOfRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hero image index"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "index": index})
}

// GetHiddenCategories handles GET /api/admin/hidden-categories.
func (h *Handlers) GetHiddenCategories(c *gin.Context) {
	cfg, err := h.SiteConfig.Read()
	if err != nil {
		h.Log.WithError(err).Error("site config read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read hidden categories"})
		return
	}
	if cfg.HiddenCategories == nil {
		cfg.HiddenCategories = []string{}
	}
	c.JSON(http.StatusOK, cfg.HiddenCategories)
}

// ToggleCategoryVisibility handles
// POST /api/admin/categories/:categoryId/toggle-visibility.
func (h *Handlers) ToggleCategoryVisibility(c *gin.Context) {
	categoryID := c.Param("categoryId")

	isHidden := false
	_, err := h.SiteConfig.Update(func(cfg *siteconfig.Config) {
		for i, id := range cfg.HiddenCategories {
			if id == categoryID {
				cfg.HiddenCategories = append(cfg.HiddenCategories[:i], cfg.HiddenCategories[i+1:]...)
				return
			}
		}
		cfg.HiddenCategories = append(cfg.HiddenCategories, categoryID)
		isHidden = true
	})
	if err != nil {
		h.Log.WithError(err).Error("category visibility toggle failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle category visibility"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categoryId": categoryID, "isHidden": isHidden})
}

// Package catalog turns raw Odoo records into the stable shapes the
// storefront renders: transformed products and aggregated category lists.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/bellabath/storefront-api/internal/models"
	"github.com/bellabath/storefront-api/internal/odoo"
)

// Transformer maps Odoo product records to UI products. It only needs the
// instance base URL to derive image links; no I/O happens here.
type Transformer struct {
	BaseURL string
}

// ImageURL builds the full-size image link for a product template.
// This leans on Odoo's /web/image serving convention; if that ever
// changes the links break silently, there is no existence check here.
func (t Transformer) ImageURL(productID int64) string {
	return fmt.Sprintf("%s/web/image/product.template/%d/image_1920", t.BaseURL, productID)
}

// ThumbnailURL builds the 512px thumbnail link for a product template.
func (t Transformer) ThumbnailURL(productID int64) string {
	return fmt.Sprintf("%s/web/image/product.template/%d/image_512", t.BaseURL, productID)
}

// ProductImageURL builds the link for an extra product.image record.
func (t Transformer) ProductImageURL(imageID int64) string {
	return fmt.Sprintf("%s/web/image/product.image/%d/image_1920", t.BaseURL, imageID)
}

// AttachmentURL builds a download link for an ir.attachment.
func (t Transformer) AttachmentURL(attachmentID int64) string {
	return fmt.Sprintf("%s/web/content/%d?download=true", t.BaseURL, attachmentID)
}

// Product transforms one raw record into the website shape.
func (t Transformer) Product(rec odoo.ProductRecord) models.Product {
	p := models.Product{
		ID:                   rec.ID,
		Name:                 rec.Name,
		Price:                rec.ListPrice,
		Category:             "Uncategorized",
		PublicCategoryIDs:    ids(rec.PublicCategIDs),
		Image:                t.ImageURL(rec.ID),
		Thumbnail:            t.ThumbnailURL(rec.ID),
		AdditionalImageIDs:   ids(rec.ImageIDs),
		Description:          rec.DescriptionSale.String(),
		EcommerceDescription: rec.WebsiteDescription.String(),
		SKU:                  rec.DefaultCode.String(),
		InStock:              rec.QtyAvailable > 0 || rec.AllowOutOfStock,
		AllowOutOfStock:      rec.AllowOutOfStock,
		OutOfStockMessage:    rec.OutOfStockMessage.String(),
		ShowAvailability:     rec.ShowAvailability,
		AvailableThreshold:   float64(rec.AvailableThreshold),
		QtyAvailable:         float64(rec.QtyAvailable),
		AccessoryProductIDs:  ids(rec.AccessoryIDs),
		AlternativeProductIDs: ids(rec.AlternativeIDs),
		Barcode:              rec.Barcode.String(),
		VariantIDs:           ids(rec.VariantIDs),
	}

	if rec.CategID.Valid {
		p.Category = rec.CategID.Name
		catID := rec.CategID.ID
		p.CategoryID = &catID
	}
	if rec.WebsiteRibbonID.Valid {
		ribbonID := rec.WebsiteRibbonID.ID
		p.RibbonID = &ribbonID
		p.RibbonName = rec.WebsiteRibbonID.Name
	}

	p.URL = rec.WebsiteURL.String()
	if p.URL == "" {
		p.URL = "/shop/" + FallbackSlug(rec.Name, rec.ID)
	}
	p.Slug = SlugFromRecord(rec.WebsiteURL.String(), rec.Name, rec.ID)

	return p
}

// Related builds the trimmed related-product shape.
func (t Transformer) Related(id int64, name string, price float64, websiteURL string) models.RelatedProduct {
	return models.RelatedProduct{
		ID:        id,
		Name:      name,
		Price:     price,
		Thumbnail: t.ThumbnailURL(id),
		Slug:      SlugFromRecord(websiteURL, name, id),
	}
}

// FallbackSlug synthesizes a slug when Odoo has no website URL for the
// product. The trailing id keeps it round-trippable even when two products
// share a name.
func FallbackSlug(name string, id int64) string {
	return fmt.Sprintf("%s-%d", slug.Make(name), id)
}

// SlugFromRecord prefers the Odoo-provided website URL (minus the /shop/
// prefix) and falls back to the synthesized form.
func SlugFromRecord(websiteURL, name string, id int64) string {
	if websiteURL != "" {
		return strings.TrimPrefix(websiteURL, "/shop/")
	}
	return FallbackSlug(name, id)
}

var slugIDPattern = regexp.MustCompile(`-(\d+)$`)

// ExtractIDFromSlug pulls the product id out of a slug's trailing -<id>
// suffix. Returns 0 and false when the slug has no id segment.
func ExtractIDFromSlug(s string) (int64, bool) {
	m := slugIDPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ids copies an odoo.IDList into a plain slice, normalizing nil to an
// empty slice so JSON renders [] instead of null.
func ids(l odoo.IDList) []int64 {
	out := make([]int64, len(l))
	copy(out, l)
	return out
}

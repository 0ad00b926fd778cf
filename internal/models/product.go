package models

// Product is the UI-facing shape the frontend consumes. It is computed
// fresh from Odoo records on every request; only the "all products" query
// result is cached.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`

	// Internal category (kept for backwards compatibility with the grid UI)
	Category   string `json:"category"`
	CategoryID *int64 `json:"categoryId"`

	// eCommerce public categories
	PublicCategoryIDs []int64 `json:"publicCategoryIds"`

	// Images served straight off Odoo's binary-field endpoint
	Image              string  `json:"image"`
	Thumbnail          string  `json:"thumbnail"`
	AdditionalImageIDs []int64 `json:"additionalImageIds"`

	Description          string `json:"description"`
	EcommerceDescription string `json:"ecommerceDescription"`
	SKU                  string `json:"sku"`

	// Stock & availability
	InStock            bool    `json:"inStock"`
	AllowOutOfStock    bool    `json:"allowOutOfStock"`
	OutOfStockMessage  string  `json:"outOfStockMessage"`
	ShowAvailability   bool    `json:"showAvailability"`
	AvailableThreshold float64 `json:"availableThreshold"`
	QtyAvailable       float64 `json:"qtyAvailable"`

	// Merchandising ribbon ("Sale", "New!", ...)
	RibbonID   *int64 `json:"ribbonId"`
	RibbonName string `json:"ribbonName,omitempty"`

	// Related products, ids only; details are fetched separately
	AccessoryProductIDs   []int64 `json:"accessoryProductIds"`
	AlternativeProductIDs []int64 `json:"alternativeProductIds"`

	Barcode string `json:"barcode"`

	// SEO-friendly URL pieces
	URL  string `json:"url"`
	Slug string `json:"slug"`

	// Variant ids for quotation creation
	VariantIDs []int64 `json:"variantIds"`

	// Enrichment for the detail page; empty elsewhere
	AdditionalImages    []ProductImage    `json:"additionalImages,omitempty"`
	AccessoryProducts   []RelatedProduct  `json:"accessoryProducts,omitempty"`
	AlternativeProducts []RelatedProduct  `json:"alternativeProducts,omitempty"`
	Documents           []ProductDocument `json:"documents,omitempty"`
}

// ProductImage is one extra gallery image of a product.
type ProductImage struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RelatedProduct is the trimmed shape used for accessories, alternatives
// and the random-from-category strip.
type RelatedProduct struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Slug      string  `json:"slug"`
}

// ProductDocument is a downloadable datasheet/manual attached to a product.
type ProductDocument struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Ribbon is a merchandising badge.
type Ribbon struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	HTML      string `json:"html"`
	BgColor   string `json:"bg_color"`
	TextColor string `json:"text_color"`
}

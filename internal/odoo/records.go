package odoo

// Raw record shapes as they come back from search_read. Only the fields we
// actually request are declared; everything else in the payload is ignored.

// ProductRecord is a product.template row.
type ProductRecord struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	ListPrice          float64   `json:"list_price"`
	CategID            Many2One  `json:"categ_id"`
	DescriptionSale    OptString `json:"description_sale"`
	WebsiteDescription OptString `json:"website_description"`
	DefaultCode        OptString `json:"default_code"`
	Barcode            OptString `json:"barcode"`
	QtyAvailable       OptFloat  `json:"qty_available"`
	WebsiteURL         OptString `json:"website_url"`
	PublicCategIDs     IDList    `json:"public_categ_ids"`
	WebsiteRibbonID    Many2One  `json:"website_ribbon_id"`
	AllowOutOfStock    bool      `json:"allow_out_of_stock_order"`
	OutOfStockMessage  OptString `json:"out_of_stock_message"`
	ShowAvailability   bool      `json:"show_availability"`
	AvailableThreshold OptFloat  `json:"available_threshold"`
	ImageIDs           IDList    `json:"product_template_image_ids"`
	VariantIDs         IDList    `json:"product_variant_ids"`
	AccessoryIDs       IDList    `json:"accessory_product_ids"`
	AlternativeIDs     IDList    `json:"alternative_product_ids"`
}

// CategoryRecord covers both product.category and product.public.category
// rows; internal categories simply never have a sequence.
type CategoryRecord struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CompleteName OptString `json:"complete_name"`
	ParentID     Many2One  `json:"parent_id"`
	ChildIDs     IDList    `json:"child_id"`
	Sequence     int       `json:"sequence"`
}

// PartnerRecord is a res.partner row (customer registry).
type PartnerRecord struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Phone   OptString `json:"phone"`
	Mobile  OptString `json:"mobile"`
	Email   OptString `json:"email"`
	Comment OptString `json:"comment"`
}

// RibbonRecord is a product.ribbon row (merchandising badge).
type RibbonRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	HTML      OptString `json:"html"`
	BgColor   OptString `json:"bg_color"`
	TextColor OptString `json:"text_color"`
}

// AttachmentRecord is an ir.attachment row with its base64 payload.
type AttachmentRecord struct {
	Name     string    `json:"name"`
	Mimetype OptString `json:"mimetype"`
	Datas    string    `json:"datas"`
}

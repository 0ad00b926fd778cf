package models

// Shapes returned by the order-tracking endpoints. Each record type has
// its own summary; the search response carries all four so one missing
// Odoo module never hides the others.

// TrackCustomer is the customer scope a phone search resolved to.
type TrackCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// OrderSummary is one sale order in the search results.
type OrderSummary struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	ClientRef    string  `json:"clientRef,omitempty"`
	Status       string  `json:"status"`
	StatusKey    string  `json:"statusKey"`
	Date         string  `json:"date"`
	Total        float64 `json:"total"`
	CustomerName string  `json:"customerName"`
	ItemCount    int     `json:"itemCount"`
}

// DeliverySummary is one outgoing stock picking.
type DeliverySummary struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	Origin        string `json:"origin,omitempty"`
	Status        string `json:"status"`
	StatusKey     string `json:"statusKey"`
	ScheduledDate string `json:"scheduledDate"`
	DoneDate      string `json:"doneDate,omitempty"`
	CustomerName  string `json:"customerName"`
	ItemCount     int    `json:"itemCount"`
}

// TicketSummary is one helpdesk ticket.
type TicketSummary struct {
	ID           int64  `json:"id"`
	Reference    string `json:"reference"`
	Subject      string `json:"subject"`
	Status       string `json:"status"`
	Date         string `json:"date"`
	CustomerName string `json:"customerName"`
	Priority     string `json:"priority"`
}

// RepairSummary is one repair order.
type RepairSummary struct {
	ID           int64   `json:"id"`
	Reference    string  `json:"reference"`
	Status       string  `json:"status"`
	StatusKey    string  `json:"statusKey"`
	Date         string  `json:"date"`
	CustomerName string  `json:"customerName"`
	Product      string  `json:"product"`
	Total        float64 `json:"total"`
}

// TrackSearchResult is the combined response of /api/track/search.
type TrackSearchResult struct {
	Success      bool              `json:"success"`
	Query        string            `json:"query"`
	SearchType   string            `json:"searchType"` // "phone" or "reference"
	TotalResults int               `json:"totalResults"`
	Orders       []OrderSummary    `json:"orders"`
	Deliveries   []DeliverySummary `json:"deliveries"`
	Helpdesk     []TicketSummary   `json:"helpdesk"`
	Repairs      []RepairSummary   `json:"repairs"`
	Customer     *TrackCustomer    `json:"customer"`
}

// OrderLine is one line of the order detail view.
type OrderLine struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

// OrderDetail is the full order view with line items.
type OrderDetail struct {
	ID           int64       `json:"id"`
	Reference    string      `json:"reference"`
	ClientRef    string      `json:"clientRef,omitempty"`
	Status       string      `json:"status"`
	StatusKey    string      `json:"statusKey"`
	Date         string      `json:"date"`
	ExpectedDate string      `json:"expectedDate,omitempty"`
	Subtotal     float64     `json:"subtotal"`
	Tax          float64     `json:"tax"`
	Total        float64     `json:"total"`
	CustomerName string      `json:"customerName"`
	Note         string      `json:"note,omitempty"`
	Lines        []OrderLine `json:"lines"`
}

// DeliveryLine is one stock move of the delivery detail view.
type DeliveryLine struct {
	ProductName  string  `json:"productName"`
	Quantity     float64 `json:"quantity"`
	QuantityDone float64 `json:"quantityDone"`
	UOM          string  `json:"uom"`
}

// DeliveryDetail is the full delivery view with moves.
type DeliveryDetail struct {
	ID            int64          `json:"id"`
	Reference     string         `json:"reference"`
	Origin        string         `json:"origin,omitempty"`
	Status        string         `json:"status"`
	StatusKey     string         `json:"statusKey"`
	ScheduledDate string         `json:"scheduledDate"`
	DoneDate      string         `json:"doneDate,omitempty"`
	CustomerName  string         `json:"customerName"`
	Lines         []DeliveryLine `json:"lines"`
}

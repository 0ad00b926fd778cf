package models

// Category is the aggregated view of an Odoo category: the raw record plus
// derived counts. Recomputed on every cache-miss fetch, never persisted.
type Category struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	FullName   string  `json:"fullName,omitempty"`
	Slug       string  `json:"slug"`
	ParentID   *int64  `json:"parentId"`
	ParentName string  `json:"parentName,omitempty"`
	ChildIDs   []int64 `json:"childIds"`
	Sequence   int     `json:"sequence"`

	// Count is the category's own published-product count; TotalCount adds
	// every descendant's count on top.
	Count      int `json:"count"`
	TotalCount int `json:"totalCount"`

	Image string `json:"image,omitempty"`
}

// CategoryNode is one node of the denormalized category tree.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}

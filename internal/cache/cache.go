// Package cache implements the short-lived in-memory cache that keeps the
// storefront from hammering Odoo on every request. Each concern gets its
// own independent slot; there is no cross-slot invalidation beyond ClearAll.
package cache

import (
	"sync"
	"time"

	"github.com/bellabath/storefront-api/internal/models"
)

// Slot holds one cached payload with a fixed time-to-live.
// Writes are full replacements, so concurrent cold-cache fetches that race
// each other are a wasted Odoo call, not a correctness problem. Last
// write wins.
type Slot[T any] struct {
	mu        sync.Mutex
	data      *T
	timestamp time.Time
	ttl       time.Duration
}

// NewSlot creates an empty slot with the given ttl.
func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl}
}

// Read returns the cached payload if it is still fresh.
// A stale entry is treated as a plain miss; it stays in place until the
// next successful Write overwrites it.
func (s *Slot[T]) Read() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.data == nil || time.Since(s.timestamp) >= s.ttl {
		return zero, false
	}
	return *s.data, true
}

// Write stores data and stamps it with the current time.
func (s *Slot[T]) Write(data T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = &data
	s.timestamp = time.Now()
}

// Clear empties the slot.
func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.timestamp = time.Time{}
}

// Store bundles every cache slot the server uses. It is constructed once
// in main and injected into the handlers, so tests can spin up isolated
// instances instead of sharing package state.
type Store struct {
	Products         *Slot[[]models.Product]
	Categories       *Slot[[]models.Category]
	PublicCategories *Slot[[]models.Category]
	Ribbons          *Slot[[]models.Ribbon]
}

// TTLs per slot. Products churn the most; ribbons barely ever change.
const (
	ProductTTL        = 5 * time.Minute
	CategoryTTL       = 30 * time.Minute
	PublicCategoryTTL = 30 * time.Minute
	RibbonTTL         = 60 * time.Minute
)

// NewStore creates a store with every slot empty.
func NewStore() *Store {
	return &Store{
		Products:         NewSlot[[]models.Product](ProductTTL),
		Categories:       NewSlot[[]models.Category](CategoryTTL),
		PublicCategories: NewSlot[[]models.Category](PublicCategoryTTL),
		Ribbons:          NewSlot[[]models.Ribbon](RibbonTTL),
	}
}

// ClearAll resets every slot. Used by the admin cache-clear endpoint.
func (s *Store) ClearAll() {
	s.Products.Clear()
	s.Categories.Clear()
	s.PublicCategories.Clear()
	s.Ribbons.Clear()
}

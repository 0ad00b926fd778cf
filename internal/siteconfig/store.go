// Package siteconfig manages the admin-editable site configuration blob:
// category image overrides, hero images, hidden categories, and landing
// content. It lives in a single JSON file next to the server.
package siteconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// HeroImage is one slide of the homepage hero carousel.
type HeroImage struct {
	URL      string            `json:"url"`
	Alt      string            `json:"alt"`
	Link     string            `json:"link,omitempty"`
	Variants map[string]string `json:"variants,omitempty"`
}

// CategoryFeature is one icon/blurb pair on a category landing page.
type CategoryFeature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CategoryContent is the admin-editable landing content for a category.
type CategoryContent struct {
	HeroTitle           string            `json:"heroTitle,omitempty"`
	HeroSubtitle        string            `json:"heroSubtitle,omitempty"`
	HeroImage           string            `json:"heroImage,omitempty"`
	Description         string            `json:"description,omitempty"`
	Features            []CategoryFeature `json:"features,omitempty"`
	ProductSectionTitle string            `json:"productSectionTitle,omitempty"`
	CTAText             string            `json:"ctaText,omitempty"`
	CTALink             string            `json:"ctaLink,omitempty"`
}

// Config is the whole site configuration document. Mutated only through
// authenticated admin routes; read by public routes without auth.
type Config struct {
	HeroImages            []HeroImage                  `json:"heroImages,omitempty"`
	CategoryImages        map[string]string            `json:"categoryImages,omitempty"`
	CategoryImageVariants map[string]map[string]string `json:"categoryImageVariants,omitempty"`
	CategoryContent       map[string]CategoryContent   `json:"categoryLandingContent,omitempty"`
	HiddenCategories      []string                     `json:"hiddenCategories,omitempty"`
	CategoryGridCount     int                          `json:"categoryGridCount,omitempty"`
	LastUpdated           string                       `json:"lastUpdated,omitempty"`
}

// DefaultHeroImages seeds a fresh install with stock photography.
var DefaultHeroImages = []HeroImage{
	{URL: "https://images.unsplash.com/photo-1584622650111-993a426fbf0a?w=1200&q=80", Alt: "Modern Freestanding Bathtub"},
	{URL: "https://images.unsplash.com/photo-1620626011761-996317b8d101?w=1200&q=80", Alt: "Luxury Jacuzzi Spa"},
	{URL: "https://images.unsplash.com/photo-1629774631753-88f827bf6447?w=1200&q=80", Alt: "Modern Rain Shower"},
	{URL: "https://images.unsplash.com/photo-1552321554-5fefe8c9ef14?w=1200&q=80", Alt: "Elegant Soaking Tub"},
	{URL: "https://images.unsplash.com/photo-1600566752355-35792bedcfea?w=1200&q=80", Alt: "Contemporary Walk-in Shower"},
}

// Store reads and writes the config file. A mutex serializes writers so
// concurrent admin edits can't interleave a read-modify-write.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore manages the config file at path. The file is created lazily on
// first write; reads of a missing file return an empty config.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Read loads the current config. A missing file is not an error.
func (s *Store) Read() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() (Config, error) {
	var cfg Config
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("siteconfig: read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("siteconfig: parse %s: %w", s.path, err)
	}
	return cfg, nil
}

// Write replaces the whole config, stamping LastUpdated.
func (s *Store) Write(cfg Config) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(cfg)
}

func (s *Store) write(cfg Config) (Config, error) {
	cfg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return cfg, fmt.Errorf("siteconfig: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return cfg, fmt.Errorf("siteconfig: write %s: %w", s.path, err)
	}
	return cfg, nil
}

// Update applies fn to the current config under the lock and persists the
// result. All admin mutations go through here.
func (s *Store) Update(fn func(*Config)) (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.read()
	if err != nil {
		return cfg, err
	}
	fn(&cfg)
	return s.write(cfg)
}

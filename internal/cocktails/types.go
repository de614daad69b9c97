package cocktails

import (
	"encoding/json"
	"time"
)

// Cocktail is a menu item in the cocktail gallery.
type Cocktail struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Category     string    `json:"category,omitempty"`
	Featured     bool      `json:"featured"`
	PriceCents   int64     `json:"price_cents"`
	CloudinaryID string    `json:"cloudinary_id,omitempty"`
	LocalPath    string    `json:"local_path,omitempty"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ImageURL prefers the media-library asset over a local file.
func (c Cocktail) ImageURL() string {
	if c.CloudinaryID != "" {
		return c.CloudinaryID
	}
	return c.LocalPath
}

// MarshalJSON adds the derived price dollars and resolved image URL.
func (c Cocktail) MarshalJSON() ([]byte, error) {
	type alias Cocktail
	return json.Marshal(struct {
		alias
		Price    float64 `json:"price"`
		ImageURL string  `json:"image_url,omitempty"`
	}{
		alias:    alias(c),
		Price:    float64(c.PriceCents) / 100,
		ImageURL: c.ImageURL(),
	})
}

// ListFilter narrows a cocktail listing.
type ListFilter struct {
	Category     string
	FeaturedOnly bool
}

package domain

import "fmt"

// Product is a static catalog entry. Products are immutable once the catalog
// is built; the cart never stores product data, only references by ID.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt"`
}

// Validate checks the catalog construction contract: stable non-empty ID,
// non-negative price, and non-empty image alt text for screen readers.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("product %s: name is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: price must not be negative", p.ID)
	}
	if p.ImageAlt == "" {
		return fmt.Errorf("product %s: image alt text is required", p.ID)
	}
	return nil
}

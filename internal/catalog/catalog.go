// Package catalog holds the immutable product catalog. The catalog is built
// once at startup and never mutated, so reads need no locking.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/slug"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
)

// Catalog is an immutable, order-preserving product set.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// defaultProducts is the built-in konbini product set. Prices are JPY; names
// carry the icon glyph the storefront renders.
func defaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "onigiri", Name: "🍙Onigiri", Price: 120, ImageURL: "/images/onigiri.jpg", ImageAlt: "onigiri"},
		{ID: "sweet-potato", Name: "🍠Sweet Potato", Price: 290, ImageURL: "/images/sweet-potato.jpg", ImageAlt: "sweet potato"},
		{ID: "croissant", Name: "🥐Croissant", Price: 200, ImageURL: "/images/croissant.jpg", ImageAlt: "croissant"},
		{ID: "sushi", Name: "🍣Sushi", Price: 480, ImageURL: "/images/sushi.jpg", ImageAlt: "sushi"},
		{ID: "egg", Name: "🥚Egg", Price: 100, ImageURL: "/images/egg.jpg", ImageAlt: "egg"},
		{ID: "buritto", Name: "🌯Buritto", Price: 390, ImageURL: "/images/buritto.jpg", ImageAlt: "buritto"},
		{ID: "pudding", Name: "🍮Pudding", Price: 150, ImageURL: "/images/pudding.jpg", ImageAlt: "pudding"},
		{ID: "pretzel", Name: "🥨Pretzel", Price: 520, ImageURL: "/images/pretzel.jpg", ImageAlt: "pretzel"},
	}
}

// New builds a catalog from the given products, filling in slugs and
// validating every entry. Construction fails on the first invalid product or
// duplicate ID/slug; a storefront must not come up with a broken catalog.
func New(products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog: no products")
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}

	for _, p := range products {
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate product slug %q", p.Slug)
		}

		c.byID[p.ID] = len(c.products)
		c.bySlug[p.Slug] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// NewDefault builds the catalog from the built-in product set.
func NewDefault() (*Catalog, error) {
	return New(defaultProducts())
}

// LoadFile builds a catalog from a JSON file containing an array of products.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	return New(products)
}

// Get returns the product with the given ID, or UnknownProduct.
func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, apperrors.UnknownProduct(id)
	}
	return c.products[i], nil
}

// GetBySlug returns the product with the given slug, or NotFound.
func (c *Catalog) GetBySlug(s string) (domain.Product, error) {
	i, ok := c.bySlug[s]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", s)
	}
	return c.products[i], nil
}

// Has reports whether a product ID exists in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns all products in catalog order. The returned slice is a copy.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

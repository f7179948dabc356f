package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/medstore/internal/i18n"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrInvalidRating    = errors.New("rating must be between 0 and 5")
	ErrInvalidProductID = errors.New("product id is required")
)

const MaxRating = 5.0

// Product is an immutable catalog entry
type Product struct {
	ID          string          `json:"id"`
	Name        i18n.Text       `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Rating      float64         `json:"rating"`
	Image       string          `json:"image"`
	Description i18n.Text       `json:"description"`
}

// Category is a browsable product group shown on the home page
type Category struct {
	ID    string    `json:"id"`
	Name  i18n.Text `json:"name"`
	Icon  IconKind  `json:"icon"`
	Image string    `json:"image"`
}

// Provider supplies the catalog once at startup
type Provider interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// Catalog is the read-only product and category list. Safe for concurrent reads.
type Catalog struct {
	products   []Product
	byID       map[string]int
	categories []Category
}

// New validates products and categories and builds a catalog preserving their order
func New(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		byID:       make(map[string]int, len(products)),
		categories: make([]Category, 0, len(categories)),
	}

	for _, p := range products {
		if p.ID == "" {
			return nil, ErrInvalidProductID
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: product %s", ErrDuplicateID, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidPrice, p.ID)
		}
		if p.Rating < 0 || p.Rating > MaxRating {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidRating, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	seen := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if seen[cat.ID] {
			return nil, fmt.Errorf("%w: category %s", ErrDuplicateID, cat.ID)
		}
		if !cat.Icon.Valid() {
			return nil, fmt.Errorf("%w: category %s", ErrUnknownIcon, cat.ID)
		}
		seen[cat.ID] = true
		c.categories = append(c.categories, cat)
	}

	return c, nil
}

// Products returns all products in catalog order
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a product by id
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Price implements the cart's price source
func (c *Catalog) Price(id string) (decimal.Decimal, bool) {
	p, ok := c.Product(id)
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}

// Contains reports whether id is a known product
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Position is the catalog index of a product, used for stable tie-breaks
func (c *Catalog) Position(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Categories returns the category records in catalog order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len is the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

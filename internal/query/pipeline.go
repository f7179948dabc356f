package query

import (
	"errors"
	"sort"
	"strings"

	"github.com/example/medstore/internal/domain/catalog"
	"github.com/example/medstore/internal/i18n"
	"github.com/shopspring/decimal"
)

// AllCategories disables the category filter
const AllCategories = "all"

var ErrUnknownSortKey = errors.New("unknown sort key")

// DefaultMaxPrice is the price slider's initial position
var DefaultMaxPrice = decimal.NewFromInt(2000)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
)

// ParseSortKey accepts the sort dropdown values. Empty means featured.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortPriceLow:
		return SortPriceLow, nil
	case SortPriceHigh:
		return SortPriceHigh, nil
	case SortRating:
		return SortRating, nil
	}
	return "", ErrUnknownSortKey
}

// Config is the filter/sort state of the product listing
type Config struct {
	Search   string          `json:"search"`
	Category string          `json:"category"`
	MaxPrice decimal.Decimal `json:"max_price"`
	Sort     SortKey         `json:"sort"`
}

// DefaultConfig matches the listing page's initial state
func DefaultConfig() Config {
	return Config{
		Category: AllCategories,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

func (cfg Config) allCategories() bool {
	return cfg.Category == "" || strings.EqualFold(cfg.Category, AllCategories)
}

// Matches is the filter predicate for one product. The search text is
// matched as given against the name in lang only.
func (cfg Config) Matches(p catalog.Product, lang i18n.Language) bool {
	if !i18n.ContainsFold(p.Name.Exact(lang), cfg.Search) {
		return false
	}
	if !cfg.allCategories() && p.Category != cfg.Category {
		return false
	}
	return p.Price.LessThanOrEqual(cfg.MaxPrice)
}

// Run filters and sorts the catalog. It never mutates its inputs and
// identical inputs always give identical output.
func Run(c *catalog.Catalog, cfg Config, lang i18n.Language) []catalog.Product {
	products := c.Products()
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if cfg.Matches(p, lang) {
			filtered = append(filtered, p)
		}
	}

	// products arrive in catalog order, so a stable sort breaks ties by catalog position
	switch cfg.Sort {
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.LessThan(filtered[j].Price)
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price.GreaterThan(filtered[j].Price)
		})
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	}

	return filtered
}

// Categories lists the filter choices: "all" then each product category tag in catalog order
func Categories(c *catalog.Catalog) []string {
	out := []string{AllCategories}
	seen := make(map[string]bool)
	for _, p := range c.Products() {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

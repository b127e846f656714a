package services

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"lumina-store/models"
)

// DefaultPageSize is the number of products shown per page.
const DefaultPageSize = 8

// Window is one page of the filtered, sorted result set.
type Window struct {
	Products []models.Product
	Page     int
	HasMore  bool
	// Matched is the size of the filtered set the window was cut from.
	Matched int
}

// Processor filters, sorts and windows a fetched batch.
type Processor struct {
	pageSize int
}

// NewProcessor creates a Processor. A non-positive pageSize uses DefaultPageSize.
func NewProcessor(pageSize int) *Processor {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Processor{pageSize: pageSize}
}

// PageSize returns the window size.
func (p *Processor) PageSize() int { return p.pageSize }

// Process applies the filter to batch, sorts it and returns the window for
// page. The batch is not modified.
func (p *Processor) Process(batch []models.Product, filter models.FilterState, page int) Window {
	if page < 1 {
		page = 1
	}

	matched := Filter(batch, filter)
	SortProducts(matched, filter.Sort)

	start := (page - 1) * p.pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+p.pageSize, len(matched))

	return Window{
		Products: slices.Clone(matched[start:end]),
		Page:     page,
		HasMore:  end < len(matched),
		Matched:  len(matched),
	}
}

// Filter returns the products passing the category, price and search
// predicates, in source order.
func Filter(batch []models.Product, filter models.FilterState) []models.Product {
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]models.Product, 0, len(batch))
	for _, prod := range batch {
		if Matches(prod, filter.Category, filter.Price, query) {
			out = append(out, prod)
		}
	}
	return out
}

// Matches reports whether a product passes all three predicates. query must
// already be lower-cased and trimmed; empty matches everything.
func Matches(prod models.Product, cat models.Category, price models.PriceRange, query string) bool {
	return cat.Matches(prod.Category) && WithinPrice(prod, price) && matchesSearch(prod, query)
}

// WithinPrice reports whether the product price lies in [Min, Max].
func WithinPrice(prod models.Product, r models.PriceRange) bool {
	lo := prod.Price.Cmp(decimalInt(r.Min))
	hi := prod.Price.Cmp(decimalInt(r.Max))
	return lo >= 0 && hi <= 0
}

func matchesSearch(prod models.Product, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(prod.Title), query) ||
		strings.Contains(strings.ToLower(prod.Description), query) ||
		strings.Contains(strings.ToLower(prod.Category), query)
}

// SortProducts orders products in place. Featured keeps the existing order.
func SortProducts(products []models.Product, mode models.SortMode) {
	switch mode {
	case models.SortPriceAsc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case models.SortPriceDesc:
		slices.SortStableFunc(products, func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}
}

func decimalInt(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

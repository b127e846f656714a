package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSort     = errors.New("unknown sort mode")
)

// Category is one of the fixed storefront filter options.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryApparel     Category = "apparel"
	CategoryAccessories Category = "accessories"
	CategoryTech        Category = "tech"
)

// Categories lists the filter options in display order.
var Categories = []Category{CategoryAll, CategoryApparel, CategoryAccessories, CategoryTech}

var categoryLabels = map[Category]string{
	CategoryAll:         "All Products",
	CategoryApparel:     "Apparel",
	CategoryAccessories: "Accessories",
	CategoryTech:        "Tech",
}

// sourceValues maps a filter option to the catalog's category string.
var sourceValues = map[Category]string{
	CategoryApparel:     "clothing",
	CategoryAccessories: "jewelery",
	CategoryTech:        "electronics",
}

// ParseCategory converts a filter option name. Empty means all.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, nil
	}
	c := Category(s)
	if _, ok := categoryLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Label is the human-readable name of the option.
func (c Category) Label() string { return categoryLabels[c] }

// SourceValue is the catalog category string the option matches against.
func (c Category) SourceValue() string { return sourceValues[c] }

// Matches reports whether a catalog category string passes this filter.
// Apparel matches any category containing "clothing"; the rest need an
// exact case-insensitive match.
func (c Category) Matches(category string) bool {
	switch c {
	case CategoryAll, "":
		return true
	case CategoryApparel:
		return containsFold(category, sourceValues[c])
	default:
		return strings.EqualFold(category, sourceValues[c])
	}
}

// SortMode orders the filtered result set.
type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceAsc  SortMode = "priceAsc"
	SortPriceDesc SortMode = "priceDesc"
)

// ParseSort converts a sort selector value. Empty means featured.
func ParseSort(s string) (SortMode, error) {
	switch SortMode(strings.TrimSpace(s)) {
	case "", SortFeatured:
		return SortFeatured, nil
	case SortPriceAsc:
		return SortPriceAsc, nil
	case SortPriceDesc:
		return SortPriceDesc, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// Slider bounds of the price range inputs.
const (
	PriceFloor   = 0
	PriceCeiling = 1000
)

// PriceRange is an inclusive price window. Min < Max always holds for
// ranges built through WithMin/WithMax.
type PriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultPriceRange is the range a new session starts with.
var DefaultPriceRange = PriceRange{Min: 30, Max: 480}

// WithMin returns the range with Min set to v, clamped below Max.
func (r PriceRange) WithMin(v int) PriceRange {
	r.Min = min(clampSlider(v), r.Max-1)
	return r
}

// WithMax returns the range with Max set to v, clamped above Min.
func (r PriceRange) WithMax(v int) PriceRange {
	r.Max = max(clampSlider(v), r.Min+1)
	return r
}

func clampSlider(v int) int {
	return max(PriceFloor, min(v, PriceCeiling))
}

// FilterState is the combined selection driving a catalog query.
type FilterState struct {
	Category Category   `json:"category"`
	Price    PriceRange `json:"price"`
	Sort     SortMode   `json:"sort"`
	Search   string     `json:"search"`
}

// DefaultFilterState is the selection a new session starts with.
func DefaultFilterState() FilterState {
	return FilterState{
		Category: CategoryAll,
		Price:    DefaultPriceRange,
		Sort:     SortFeatured,
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

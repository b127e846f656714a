package models

import "github.com/shopspring/decimal"

// DefaultRating is displayed for products the catalog sent without a rating.
const DefaultRating = 4.5

// Product is a catalog item as decoded from the catalog source.
// It is treated as immutable once normalised.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// Rating is the aggregate review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// DisplayRating returns the rating rate, or DefaultRating when absent.
func (p *Product) DisplayRating() float64 {
	if p.Rating == nil {
		return DefaultRating
	}
	return p.Rating.Rate
}

// IsNew reports whether the product carries the "New" badge (clothing items).
func (p *Product) IsNew() bool {
	return containsFold(p.Category, "clothing")
}

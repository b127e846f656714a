package models

import "github.com/shopspring/decimal"

// InsightReport holds the computed analytics over a product list.
type InsightReport struct {
	TotalProducts      int             `json:"total_products"`
	NewProducts        int             `json:"new_products"`
	AveragePrice       decimal.Decimal `json:"average_price"`
	MinPrice           decimal.Decimal `json:"min_price"`
	MaxPrice           decimal.Decimal `json:"max_price"`
	MostExpensive      *Product        `json:"most_expensive,omitempty"`
	TopRated           []*Product      `json:"top_rated"`
	ProductsByCategory map[string]int  `json:"products_by_category"`
}

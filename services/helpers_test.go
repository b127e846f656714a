package services

import (
	"github.com/shopspring/decimal"

	"lumina-store/models"
	"lumina-store/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func product(id int, price, category string) models.Product {
	return models.Product{
		ID:       id,
		Title:    "Product " + price,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

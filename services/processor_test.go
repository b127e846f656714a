package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-store/models"
)

func TestProcessorApparelExample(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	batch := []models.Product{
		product(1, "25", "clothing"),
		product(2, "100", "electronics"),
		product(3, "50", "men's clothing"),
	}
	filter := models.FilterState{
		Category: models.CategoryApparel,
		Price:    models.PriceRange{Min: 30, Max: 480},
		Sort:     models.SortFeatured,
	}

	w := p.Process(batch, filter, 1)
	assert.Equal(t, []int{3}, ids(w.Products))
	assert.False(t, w.HasMore)
}

func TestProcessorPriceBoundsInclusive(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	batch := []models.Product{
		product(1, "29.99", "jewelery"),
		product(2, "30", "jewelery"),
		product(3, "480", "jewelery"),
		product(4, "480.01", "jewelery"),
	}
	filter := models.DefaultFilterState()

	w := p.Process(batch, filter, 1)
	assert.Equal(t, []int{2, 3}, ids(w.Products))
}

func TestProcessorCategoryExactMatch(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	batch := []models.Product{
		product(1, "50", "Jewelery"),
		product(2, "50", "jewelery box"),
		product(3, "50", "electronics"),
	}
	filter := models.DefaultFilterState()
	filter.Category = models.CategoryAccessories

	assert.Equal(t, []int{1}, ids(p.Process(batch, filter, 1).Products))

	filter.Category = models.CategoryTech
	assert.Equal(t, []int{3}, ids(p.Process(batch, filter, 1).Products))
}

func TestProcessorSearch(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	batch := []models.Product{
		{ID: 1, Title: "Gold Ring", Price: product(0, "60", "").Price, Category: "jewelery"},
		{ID: 2, Title: "Jacket", Description: "Warm RAIN jacket", Price: product(0, "60", "").Price, Category: "men's clothing"},
		{ID: 3, Title: "Monitor", Price: product(0, "60", "").Price, Category: "electronics"},
	}

	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 3}},
		{"   ", []int{1, 2, 3}},
		{"RING", []int{1}},
		{"rain", []int{2}},
		{"Electro", []int{3}},
		{"nothing", []int{}},
	}

	for _, tt := range tests {
		filter := models.DefaultFilterState()
		filter.Search = tt.query
		got := ids(p.Process(batch, filter, 1).Products)
		assert.Equalf(t, tt.want, got, "search %q", tt.query)
	}
}

func TestProcessorSorts(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	batch := []models.Product{
		product(1, "300", "x"),
		product(2, "45.5", "x"),
		product(3, "120", "x"),
		product(4, "45.5", "x"),
	}
	filter := models.DefaultFilterState()

	assert.Equal(t, []int{1, 2, 3, 4}, ids(p.Process(batch, filter, 1).Products), "featured keeps source order")

	filter.Sort = models.SortPriceAsc
	assert.Equal(t, []int{2, 4, 3, 1}, ids(p.Process(batch, filter, 1).Products))

	filter.Sort = models.SortPriceDesc
	assert.Equal(t, []int{1, 3, 2, 4}, ids(p.Process(batch, filter, 1).Products))

	assert.Equal(t, []int{1, 2, 3, 4}, ids(batch), "batch untouched")
}

func TestProcessorWindows(t *testing.T) {
	p := NewProcessor(8)
	var batch []models.Product
	for i := 1; i <= 20; i++ {
		batch = append(batch, product(i, fmt.Sprint(30+i), "x"))
	}
	filter := models.DefaultFilterState()

	w1 := p.Process(batch, filter, 1)
	require.Len(t, w1.Products, 8)
	assert.True(t, w1.HasMore)
	assert.Equal(t, 20, w1.Matched)

	w2 := p.Process(batch, filter, 2)
	assert.Equal(t, 9, w2.Products[0].ID)
	assert.True(t, w2.HasMore)

	w3 := p.Process(batch, filter, 3)
	assert.Len(t, w3.Products, 4)
	assert.False(t, w3.HasMore)

	w4 := p.Process(batch, filter, 4)
	assert.Empty(t, w4.Products)
	assert.False(t, w4.HasMore)
}

func TestProcessorExactMultipleHasNoMore(t *testing.T) {
	p := NewProcessor(4)
	var batch []models.Product
	for i := 1; i <= 8; i++ {
		batch = append(batch, product(i, "50", "x"))
	}

	w := p.Process(batch, models.DefaultFilterState(), 2)
	assert.Len(t, w.Products, 4)
	assert.False(t, w.HasMore)
}

func TestProcessorPageBelowOne(t *testing.T) {
	p := NewProcessor(2)
	batch := []models.Product{product(1, "50", "x"), product(2, "50", "x"), product(3, "50", "x")}

	w := p.Process(batch, models.DefaultFilterState(), 0)
	assert.Equal(t, 1, w.Page)
	assert.Equal(t, []int{1, 2}, ids(w.Products))
}

func TestProcessorWindowSatisfiesAllPredicates(t *testing.T) {
	p := NewProcessor(DefaultPageSize)
	cats := []string{"men's clothing", "women's clothing", "jewelery", "electronics"}
	var batch []models.Product
	for i := 1; i <= 60; i++ {
		prod := product(i, fmt.Sprint(i*13%700), cats[i%len(cats)])
		if i%3 == 0 {
			prod.Title = "Premium " + prod.Title
		}
		batch = append(batch, prod)
	}

	for _, cat := range models.Categories {
		for _, sort := range []models.SortMode{models.SortFeatured, models.SortPriceAsc, models.SortPriceDesc} {
			filter := models.FilterState{
				Category: cat,
				Price:    models.PriceRange{Min: 50, Max: 400},
				Sort:     sort,
				Search:   "premium",
			}
			for page := 1; page <= 3; page++ {
				w := p.Process(batch, filter, page)
				for i, prod := range w.Products {
					assert.True(t, cat.Matches(prod.Category))
					assert.True(t, WithinPrice(prod, filter.Price))
					assert.Contains(t, strings.ToLower(prod.Title), "premium")
					if i > 0 && sort == models.SortPriceAsc {
						assert.False(t, prod.Price.LessThan(w.Products[i-1].Price))
					}
					if i > 0 && sort == models.SortPriceDesc {
						assert.False(t, prod.Price.GreaterThan(w.Products[i-1].Price))
					}
				}
			}
		}
	}
}

package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryMatches(t *testing.T) {
	tests := []struct {
		cat      Category
		category string
		want     bool
	}{
		{CategoryAll, "anything", true},
		{CategoryApparel, "men's clothing", true},
		{CategoryApparel, "Women's Clothing", true},
		{CategoryApparel, "electronics", false},
		{CategoryAccessories, "jewelery", true},
		{CategoryAccessories, "JEWELERY", true},
		{CategoryAccessories, "fine jewelery", false},
		{CategoryTech, "electronics", true},
		{CategoryTech, "clothing", false},
	}

	for _, tt := range tests {
		got := tt.cat.Matches(tt.category)
		assert.Equalf(t, tt.want, got, "%s.Matches(%q)", tt.cat, tt.category)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Apparel ")
	require.NoError(t, err)
	assert.Equal(t, CategoryApparel, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	_, err = ParseCategory("shoes")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("priceDesc")
	require.NoError(t, err)
	assert.Equal(t, SortPriceDesc, s)

	s, err = ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortFeatured, s)

	_, err = ParseSort("rating")
	require.ErrorIs(t, err, ErrUnknownSort)
}

func TestPriceRangeClamping(t *testing.T) {
	r := PriceRange{Min: 30, Max: 480}

	assert.Equal(t, PriceRange{Min: 479, Max: 480}, r.WithMin(600))
	assert.Equal(t, PriceRange{Min: 30, Max: 31}, r.WithMax(10))
	assert.Equal(t, PriceRange{Min: 0, Max: 480}, r.WithMin(-5))
	assert.Equal(t, PriceRange{Min: 30, Max: 1000}, r.WithMax(5000))
	assert.Equal(t, PriceRange{Min: 100, Max: 480}, r.WithMin(100))
}

func TestProductDecodeWithoutRating(t *testing.T) {
	var p Product
	err := json.Unmarshal([]byte(`{"id":3,"title":"Bag","price":109.95,"category":"men's clothing"}`), &p)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("109.95").Equal(p.Price))
	assert.Nil(t, p.Rating)
	assert.Equal(t, DefaultRating, p.DisplayRating())
	assert.True(t, p.IsNew())
}

func TestPageStateFlags(t *testing.T) {
	assert.True(t, PageState{HasMore: true, Status: StatusReady}.CanLoadMore())
	assert.False(t, PageState{HasMore: true, Status: StatusError}.CanLoadMore())
	assert.False(t, PageState{HasMore: true, Status: StatusLoadingMore}.CanLoadMore())
	assert.True(t, PageState{Status: StatusLoading}.Busy())
}

func TestCartItemSubtotal(t *testing.T) {
	item := CartItem{Product: Product{Price: decimal.RequireFromString("19.99")}, Quantity: 3}
	assert.Equal(t, "59.97", item.Subtotal().StringFixed(2))
}

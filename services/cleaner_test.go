package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-store/models"
)

func TestCleanerNormalisesText(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.Product{
		{ID: 1, Title: "  Slim   Fit\tT-Shirt ", Description: "\nsoft\n cotton ", Category: " men's clothing", Image: " https://img/1.jpg "},
	}

	cleaned := c.Clean(raw)
	require.Len(t, cleaned, 1)
	assert.Equal(t, "Slim Fit T-Shirt", cleaned[0].Title)
	assert.Equal(t, "soft cotton", cleaned[0].Description)
	assert.Equal(t, "men's clothing", cleaned[0].Category)
	assert.Equal(t, "https://img/1.jpg", cleaned[0].Image)
}

func TestCleanerDropsMissingID(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.Product{
		{ID: 0, Title: "No id"},
		{ID: 2, Title: "Has id"},
	}

	cleaned := c.Clean(raw)
	assert.Equal(t, []int{2}, ids(cleaned))
}

func TestCleanerDeduplicatesID(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []models.Product{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B"},
		{ID: 1, Title: "A again"},
	}

	cleaned := c.Clean(raw)
	require.Equal(t, []int{1, 2}, ids(cleaned))
	assert.Equal(t, "A", cleaned[0].Title, "first occurrence wins")
}

func TestCleanerDoesNotAliasRating(t *testing.T) {
	c := NewCleaner(newTestLogger())
	rating := &models.Rating{Rate: 4.1, Count: 10}
	raw := []models.Product{{ID: 1, Rating: rating}}

	cleaned := c.Clean(raw)
	rating.Rate = 1
	assert.Equal(t, 4.1, cleaned[0].Rating.Rate)
}

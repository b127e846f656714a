package services

import (
	"strings"
	"unicode"

	"lumina-store/models"
	"lumina-store/utils"
)

// Cleaner normalises product batches fetched from the catalog.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean trims text fields, drops products without a usable id and keeps the
// first occurrence of each id. Source order is preserved.
func (c *Cleaner) Clean(raw []models.Product) []models.Product {
	seen := make(map[int]struct{}, len(raw))
	result := make([]models.Product, 0, len(raw))

	for _, p := range raw {
		if p.ID <= 0 {
			c.logger.Warn("[cleaner] Dropping product without id: %q", p.Title)
			continue
		}
		if _, dup := seen[p.ID]; dup {
			c.logger.Debug("[cleaner] Duplicate id skipped: %d", p.ID)
			continue
		}
		seen[p.ID] = struct{}{}

		p.Title = normaliseText(p.Title)
		p.Description = normaliseText(p.Description)
		p.Category = normaliseText(p.Category)
		p.Image = strings.TrimSpace(p.Image)
		if p.Rating != nil {
			r := *p.Rating
			p.Rating = &r
		}

		result = append(result, p)
	}

	if dropped := len(raw) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] Cleaned %d → %d products (dropped %d)", len(raw), len(result), dropped)
	}
	return result
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

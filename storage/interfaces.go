package storage

import (
	"context"

	"lumina-store/models"
)

// ProductExporter is the interface for dumping a displayed product list.
type ProductExporter interface {
	WriteProducts(products []models.Product) error
	Close() error
}

// ProductImporter is the interface for loading products into a self-hosted catalog.
type ProductImporter interface {
	Import(ctx context.Context, products []models.Product) (int, error)
	Close() error
}

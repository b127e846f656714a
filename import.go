package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/storage"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a JSON product list into the PostgreSQL catalog",
	Long: `Reads a JSON array of products in the catalog API's shape and upserts
them into the products table served by CATALOG_SOURCE=postgres.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to a JSON product list")
	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	products, err := readProducts(importFile)
	if err != nil {
		return err
	}

	ps, err := openPostgres(ctx)
	if err != nil {
		return err
	}
	n, err := importProducts(ctx, ps, products)
	if err != nil {
		return err
	}
	logger.Info("Imported %d products from %s", n, importFile)
	return nil
}

// importProducts cleans raw products and hands them to imp, closing it
// afterwards.
func importProducts(ctx context.Context, imp storage.ProductImporter, raw []models.Product) (int, error) {
	products := services.NewCleaner(logger).Clean(raw)

	n, err := imp.Import(ctx, products)
	if err != nil {
		_ = imp.Close()
		return n, err
	}
	return n, imp.Close()
}

func readProducts(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return products, nil
}

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina-store/models"
	"lumina-store/utils"
)

const fixture = `[
 {"id":1,"title":"Fjallraven Backpack","price":109.95,"description":"Fits 15 inch laptops","category":"men's clothing","image":"https://img/1.jpg","rating":{"rate":3.9,"count":120}},
 {"id":2,"title":"Casual T-Shirt","price":22.3,"description":"Slim fit","category":"men's clothing","image":"https://img/2.jpg","rating":{"rate":4.1,"count":259}},
 {"id":5,"title":"Dragon Bracelet","price":695,"description":"Silver","category":"jewelery","image":"https://img/5.jpg","rating":{"rate":4.6,"count":400}},
 {"id":9,"title":"External Hard Drive","price":64,"description":"USB 3.0","category":"electronics","image":"https://img/9.jpg"}
]`

func TestReadProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	products, err := readProducts(path)
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "695", products[2].Price.String())
	assert.Nil(t, products[3].Rating)

	_, err = readProducts(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

type recordingImporter struct {
	got    []models.Product
	err    error
	closed bool
}

func (r *recordingImporter) Import(_ context.Context, products []models.Product) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.got = products
	return len(products), nil
}

func (r *recordingImporter) Close() error {
	r.closed = true
	return nil
}

func TestImportProducts(t *testing.T) {
	prev := logger
	logger = utils.NewNopLogger()
	t.Cleanup(func() { logger = prev })

	raw := []models.Product{
		{ID: 1, Title: "  Fjallraven   Backpack "},
		{ID: 1, Title: "Duplicate"},
		{ID: 0, Title: "No id"},
		{ID: 9, Title: "External Hard Drive"},
	}

	imp := &recordingImporter{}
	n, err := importProducts(context.Background(), imp, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, imp.got, 2)
	assert.Equal(t, "Fjallraven Backpack", imp.got[0].Title)
	assert.True(t, imp.closed)

	failing := &recordingImporter{err: errors.New("connection reset")}
	_, err = importProducts(context.Background(), failing, raw)
	require.Error(t, err)
	assert.True(t, failing.closed)
}

func TestBrowseCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer srv.Close()

	csvPath := filepath.Join(t.TempDir(), "showcase.csv")
	t.Setenv("LUMINA_CONFIG", "")
	t.Setenv("CATALOG_SOURCE", "remote")
	t.Setenv("CATALOG_URL", srv.URL+"/products")
	t.Setenv("CSV_OUTPUT_PATH", csvPath)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"browse", "--category", "apparel", "--min", "30", "--max", "480", "--csv", "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "Fjallraven Backpack")
	assert.NotContains(t, text, "Casual T-Shirt", "below the price floor")
	assert.NotContains(t, text, "External Hard Drive", "wrong category")
	assert.Contains(t, text, "No More Products")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Fjallraven Backpack")
}

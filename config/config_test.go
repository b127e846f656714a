package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LUMINA_CONFIG", "")
	t.Setenv("FETCH_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.FetchLimit)
	assert.Equal(t, 8, cfg.PageSize)
	assert.Equal(t, SourceRemote, cfg.CatalogSource)
	assert.Equal(t, "https://fakestoreapi.com/products", cfg.CatalogURL)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lumina.yaml")
	body := "catalog_url: http://catalog.local/products\npage_size: 4\nhttp_addr: \":9090\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	t.Setenv("LUMINA_CONFIG", path)
	t.Setenv("PAGE_SIZE", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://catalog.local/products", cfg.CatalogURL)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 12, cfg.PageSize, "env overrides the file")
}

func TestLoadRejectsBadSource(t *testing.T) {
	t.Setenv("LUMINA_CONFIG", "")
	t.Setenv("CATALOG_SOURCE", "ftp")

	_, err := Load()
	require.Error(t, err)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("MAX_RETRIES", "many")
	assert.Equal(t, 3, getEnvInt("MAX_RETRIES", 3))
}

func TestDSN(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t,
		"host=localhost port=5432 user=lumina password=lumina123 dbname=lumina_catalog sslmode=disable",
		cfg.DSN())
}

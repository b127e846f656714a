package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration loaded from the optional YAML
// file and environment variables.
type Config struct {
	CatalogURL       string `yaml:"catalog_url"`
	CatalogSource    string `yaml:"catalog_source"`
	FetchLimit       int    `yaml:"fetch_limit"`
	PageSize         int    `yaml:"page_size"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`

	HTTPAddr string `yaml:"http_addr"`
	LogLevel string `yaml:"log_level"`

	PostgresHost     string `yaml:"postgres_host"`
	PostgresPort     string `yaml:"postgres_port"`
	PostgresUser     string `yaml:"postgres_user"`
	PostgresPassword string `yaml:"postgres_password"`
	PostgresDB       string `yaml:"postgres_db"`
	PostgresSSLMode  string `yaml:"postgres_sslmode"`
	MaxRetries       int    `yaml:"max_retries"`

	CSVOutputPath string `yaml:"csv_output_path"`
}

const (
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
)

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		CatalogURL:       "https://fakestoreapi.com/products",
		CatalogSource:    SourceRemote,
		FetchLimit:       100,
		PageSize:         8,
		RequestTimeoutMs: 10000,

		HTTPAddr: ":8080",
		LogLevel: "info",

		PostgresHost:     "localhost",
		PostgresPort:     "5432",
		PostgresUser:     "lumina",
		PostgresPassword: "lumina123",
		PostgresDB:       "lumina_catalog",
		PostgresSSLMode:  "disable",
		MaxRetries:       5,

		CSVOutputPath: "./output/showcase.csv",
	}
}

// Load reads the .env file, applies the YAML file named by LUMINA_CONFIG (if
// any) and then the environment on top of the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := Defaults()
	if path := os.Getenv("LUMINA_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.CatalogURL = getEnv("CATALOG_URL", c.CatalogURL)
	c.CatalogSource = getEnv("CATALOG_SOURCE", c.CatalogSource)
	c.FetchLimit = getEnvInt("FETCH_LIMIT", c.FetchLimit)
	c.PageSize = getEnvInt("PAGE_SIZE", c.PageSize)
	c.RequestTimeoutMs = getEnvInt("REQUEST_TIMEOUT_MS", c.RequestTimeoutMs)

	c.HTTPAddr = getEnv("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.PostgresHost = getEnv("POSTGRES_HOST", c.PostgresHost)
	c.PostgresPort = getEnv("POSTGRES_PORT", c.PostgresPort)
	c.PostgresUser = getEnv("POSTGRES_USER", c.PostgresUser)
	c.PostgresPassword = getEnv("POSTGRES_PASSWORD", c.PostgresPassword)
	c.PostgresDB = getEnv("POSTGRES_DB", c.PostgresDB)
	c.PostgresSSLMode = getEnv("POSTGRES_SSLMODE", c.PostgresSSLMode)
	c.MaxRetries = getEnvInt("MAX_RETRIES", c.MaxRetries)

	c.CSVOutputPath = getEnv("CSV_OUTPUT_PATH", c.CSVOutputPath)
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.FetchLimit < 1 {
		return fmt.Errorf("config: FETCH_LIMIT must be positive, got %d", c.FetchLimit)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	switch c.CatalogSource {
	case SourceRemote, SourcePostgres:
	default:
		return fmt.Errorf("config: unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

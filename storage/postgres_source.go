package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"lumina-store/catalog"
	"lumina-store/models"
	"lumina-store/utils"
)

var (
	_ catalog.Source  = (*PostgresSource)(nil)
	_ ProductImporter = (*PostgresSource)(nil)
)

const productColumns = "id, title, description, price, category, image, rating_rate, rating_count"

// PostgresSource serves a self-hosted catalog from PostgreSQL. It satisfies
// catalog.Source and, like the reference catalog, returns the leading
// `limit` rows of the requested ordering regardless of page.
type PostgresSource struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresSource opens a connection to PostgreSQL, pings it with retries,
// runs schema migrations and returns a ready-to-use PostgresSource.
func NewPostgresSource(ctx context.Context, dsn string, retry *utils.RetryConfig, logger *utils.Logger) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresSource{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresSource) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id           INTEGER       PRIMARY KEY,
			title        TEXT          NOT NULL,
			description  TEXT          NOT NULL DEFAULT '',
			price        NUMERIC(10,2) NOT NULL DEFAULT 0,
			category     TEXT          NOT NULL DEFAULT '',
			image        TEXT          NOT NULL DEFAULT '',
			rating_rate  NUMERIC(3,2),
			rating_count INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_products_price    ON products(price);
		CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	`)
	return err
}

// Fetch returns products ordered as the query asks, up to its limit.
func (ps *PostgresSource) Fetch(ctx context.Context, query url.Values) ([]models.Product, error) {
	req := catalog.ParseQuery(query)

	rows, err := ps.db.QueryContext(ctx, selectQuery(req.Sort), req.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres: %w", catalog.ErrFetchFailed, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p     models.Product
			rate  sql.NullFloat64
			count sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Price,
			&p.Category, &p.Image, &rate, &count); err != nil {
			return nil, fmt.Errorf("%w: postgres: scan row: %w", catalog.ErrFetchFailed, err)
		}
		if rate.Valid {
			p.Rating = &models.Rating{Rate: rate.Float64, Count: int(count.Int64)}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: postgres: %w", catalog.ErrFetchFailed, err)
	}

	ps.logger.Debug("[postgres] Served %d products (sort=%s limit=%d)", len(products), req.Sort, req.Limit)
	return products, nil
}

// Import upserts products in batches and returns the number written.
func (ps *PostgresSource) Import(ctx context.Context, products []models.Product) (int, error) {
	const batchSize = 50
	written := 0
	for i := 0; i < len(products); i += batchSize {
		end := min(i+batchSize, len(products))
		query, args := upsertBatch(products[i:end])
		if _, err := ps.db.ExecContext(ctx, query, args...); err != nil {
			return written, fmt.Errorf("postgres: import batch at %d: %w", i, err)
		}
		written += end - i
	}
	return written, nil
}

func (ps *PostgresSource) Close() error {
	return ps.db.Close()
}

func selectQuery(sort models.SortMode) string {
	order := "id"
	switch sort {
	case models.SortPriceAsc:
		order = "price ASC, id"
	case models.SortPriceDesc:
		order = "price DESC, id"
	}
	return "SELECT " + productColumns + " FROM products ORDER BY " + order + " LIMIT $1"
}

func upsertBatch(batch []models.Product) (string, []any) {
	const cols = 8
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, p := range batch {
		base := idx * cols
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		var rate, count any
		if p.Rating != nil {
			rate, count = p.Rating.Rate, p.Rating.Count
		}
		valueArgs = append(valueArgs,
			p.ID, p.Title, p.Description, p.Price, p.Category, p.Image, rate, count)
	}

	query := fmt.Sprintf(`
		INSERT INTO products (%s)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			image = EXCLUDED.image,
			rating_rate = EXCLUDED.rating_rate,
			rating_count = EXCLUDED.rating_count
	`, productColumns, strings.Join(valueStrings, ","))
	return query, valueArgs
}

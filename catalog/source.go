package catalog

import (
	"context"
	"errors"
	"net/url"

	"lumina-store/models"
)

// ErrFetchFailed covers transport failures and non-success responses.
var ErrFetchFailed = errors.New("unable to load products")

// Source is any catalog that returns a product list for a query built by
// BuildQuery. Implementations are interchangeable.
type Source interface {
	Fetch(ctx context.Context, query url.Values) ([]models.Product, error)
}

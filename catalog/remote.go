package catalog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"resty.dev/v3"

	"lumina-store/models"
	"lumina-store/utils"
)

var _ Source = (*RemoteSource)(nil)

// RemoteSource fetches products from an HTTP JSON catalog such as
// fakestoreapi.com. It never retries.
type RemoteSource struct {
	endpoint string
	client   *resty.Client
	logger   *utils.Logger
}

// NewRemoteSource creates a RemoteSource for the given endpoint.
func NewRemoteSource(endpoint string, timeout time.Duration, logger *utils.Logger) *RemoteSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RemoteSource{
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
}

// Fetch performs GET <endpoint>?<query> and decodes the product list. The body
// is always decoded as JSON whatever Content-Type the catalog sends, so an
// HTML error page fails the fetch.
func (s *RemoteSource) Fetch(ctx context.Context, query url.Values) ([]models.Product, error) {
	s.logger.Debug("[catalog] GET %s?%s", s.endpoint, query.Encode())

	var products []models.Product
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetForceResponseContentType("application/json").
		SetResult(&products).
		Get(s.endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode())
	}

	s.logger.Debug("[catalog] Received %d products", len(products))
	return products, nil
}

// Close releases the underlying HTTP client.
func (s *RemoteSource) Close() error {
	return s.client.Close()
}

// Package catalog builds queries against the product catalog and fetches
// product batches from it.
package catalog

import (
	"net/url"
	"strconv"

	"lumina-store/models"
)

// MaxLimit is the page size requested from the catalog source. The
// storefront windows over this batch locally.
const MaxLimit = 100

// BuildQuery returns the query parameters for the given page and sort mode.
// sort/order are only set for the price sorts; featured leaves the source's
// default ordering.
func BuildQuery(page int, sort models.SortMode) url.Values {
	return BuildQueryLimit(MaxLimit, page, sort)
}

// BuildQueryLimit is BuildQuery with an explicit limit.
func BuildQueryLimit(limit, page int, sort models.SortMode) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))

	switch sort {
	case models.SortPriceAsc:
		q.Set("sort", "price")
		q.Set("order", "asc")
	case models.SortPriceDesc:
		q.Set("sort", "price")
		q.Set("order", "desc")
	}
	return q
}

// Request is a decoded catalog query, used by sources that are not HTTP.
type Request struct {
	Limit int
	Page  int
	Sort  models.SortMode
}

// ParseQuery decodes query parameters built by BuildQuery. Missing or
// malformed numbers fall back to limit MaxLimit and page 1.
func ParseQuery(q url.Values) Request {
	req := Request{Limit: MaxLimit, Page: 1, Sort: models.SortFeatured}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		req.Limit = n
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		req.Page = n
	}
	if q.Get("sort") == "price" {
		if q.Get("order") == "desc" {
			req.Sort = models.SortPriceDesc
		} else {
			req.Sort = models.SortPriceAsc
		}
	}
	return req
}

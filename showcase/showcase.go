// Package showcase holds the per-session product discovery state: the
// applied filters, the pending price range, paging, the displayed products
// and which descriptions are expanded. Every pipeline run takes a fresh
// request token and cancels the previous fetch; responses carrying a stale
// token never reach the displayed state.
package showcase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"lumina-store/catalog"
	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/utils"
)

var (
	// ErrPagingDisabled is returned by LoadMore while loading, after an
	// error, or when the result set is exhausted.
	ErrPagingDisabled = errors.New("paging disabled")
	// ErrStale is returned when a newer request superseded this one.
	ErrStale = errors.New("superseded by a newer request")
	// ErrUnknownProduct is returned for ids not in the displayed list.
	ErrUnknownProduct = errors.New("product not displayed")

	errUnchanged = errors.New("unchanged")
)

// FetchErrorMessage is shown in place of the grid when a fetch fails.
const FetchErrorMessage = "Unable to load products"

// State is the complete discovery state of one session.
type State struct {
	Filter models.FilterState
	// PendingPrice is edited by the slider and only reaches Filter through ApplyPrice.
	PendingPrice models.PriceRange
	Page         models.PageState
	Products     []models.Product
	Expanded     map[int]bool
}

// Options tune the pipeline.
type Options struct {
	PageSize   int
	FetchLimit int
	// Filter is the starting selection; nil means models.DefaultFilterState.
	Filter *models.FilterState
}

// Showcase runs the discovery pipeline for one browsing session.
// It is safe for concurrent use.
type Showcase struct {
	source    catalog.Source
	cleaner   *services.Cleaner
	processor *services.Processor
	limit     int
	logger    *utils.Logger

	mu     sync.Mutex
	state  State
	shown  *utils.IDSet
	token  uint64
	cancel context.CancelFunc
}

// New creates a Showcase with the default filter state. Nothing is fetched
// until Load is called.
func New(source catalog.Source, opts Options, logger *utils.Logger) *Showcase {
	limit := opts.FetchLimit
	if limit < 1 {
		limit = catalog.MaxLimit
	}
	filter := models.DefaultFilterState()
	if opts.Filter != nil {
		filter = *opts.Filter
	}
	return &Showcase{
		source:    source,
		cleaner:   services.NewCleaner(logger),
		processor: services.NewProcessor(opts.PageSize),
		limit:     limit,
		logger:    logger,
		state: State{
			Filter:       filter,
			PendingPrice: filter.Price,
			Page:         models.PageState{Page: 1, Status: models.StatusIdle},
			Expanded:     make(map[int]bool),
		},
		shown: utils.NewIDSet(),
	}
}

// Load runs the pipeline for page 1 in replace mode.
func (s *Showcase) Load(ctx context.Context) error {
	return s.replace(ctx, func(*State) error { return nil })
}

// FilterChange names the filter fields to change. Nil fields are kept.
type FilterChange struct {
	Category *models.Category
	Sort     *models.SortMode
	Search   *string
}

// Change applies a filter change and reloads once if anything differs.
func (s *Showcase) Change(ctx context.Context, ch FilterChange) error {
	return s.replace(ctx, func(st *State) error {
		next := st.Filter
		if ch.Category != nil {
			next.Category = *ch.Category
		}
		if ch.Sort != nil {
			next.Sort = *ch.Sort
		}
		if ch.Search != nil {
			next.Search = *ch.Search
		}
		if next == st.Filter {
			return errUnchanged
		}
		st.Filter = next
		return nil
	})
}

// SetCategory changes the category filter and reloads.
func (s *Showcase) SetCategory(ctx context.Context, c models.Category) error {
	return s.Change(ctx, FilterChange{Category: &c})
}

// SetSort changes the sort mode and reloads.
func (s *Showcase) SetSort(ctx context.Context, mode models.SortMode) error {
	return s.Change(ctx, FilterChange{Sort: &mode})
}

// SetSearch changes the free-text query and reloads.
func (s *Showcase) SetSearch(ctx context.Context, query string) error {
	return s.Change(ctx, FilterChange{Search: &query})
}

// SetPendingMin moves the lower slider. Nothing is fetched.
func (s *Showcase) SetPendingMin(v int) models.PriceRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PendingPrice = s.state.PendingPrice.WithMin(v)
	return s.state.PendingPrice
}

// SetPendingMax moves the upper slider. Nothing is fetched.
func (s *Showcase) SetPendingMax(v int) models.PriceRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PendingPrice = s.state.PendingPrice.WithMax(v)
	return s.state.PendingPrice
}

// ApplyPrice commits the pending price range and reloads if it changed.
func (s *Showcase) ApplyPrice(ctx context.Context) error {
	return s.replace(ctx, func(st *State) error {
		if st.Filter.Price == st.PendingPrice {
			return errUnchanged
		}
		st.Filter.Price = st.PendingPrice
		return nil
	})
}

// LoadMore fetches the next page and appends it to the displayed list.
func (s *Showcase) LoadMore(ctx context.Context) error {
	return s.run(ctx, true, func(st *State) error {
		if !st.Page.CanLoadMore() {
			return ErrPagingDisabled
		}
		return nil
	})
}

// ToggleDescription flips the expanded flag of a displayed product and
// returns the new value.
func (s *Showcase) ToggleDescription(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.shown.Contains(id) {
		return false, ErrUnknownProduct
	}
	s.state.Expanded[id] = !s.state.Expanded[id]
	return s.state.Expanded[id], nil
}

// Product returns a displayed product by id.
func (s *Showcase) Product(id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.state.Products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrUnknownProduct
}

// Snapshot returns a copy of the current state.
func (s *Showcase) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels any in-flight fetch.
func (s *Showcase) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Showcase) snapshotLocked() State {
	st := s.state
	st.Products = append([]models.Product(nil), s.state.Products...)
	st.Expanded = make(map[int]bool, len(s.state.Expanded))
	for id, v := range s.state.Expanded {
		st.Expanded[id] = v
	}
	return st
}

func (s *Showcase) replace(ctx context.Context, mutate func(*State) error) error {
	err := s.run(ctx, false, mutate)
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

// run executes one pipeline pass. mutate runs under the lock before the
// fetch starts; returning an error aborts without touching state.
func (s *Showcase) run(ctx context.Context, appendMode bool, mutate func(*State) error) error {
	s.mu.Lock()
	if err := mutate(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}

	s.token++
	token := s.token
	if s.cancel != nil {
		s.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	defer cancel()

	page := 1
	if appendMode {
		page = s.state.Page.Page + 1
		s.state.Page.Status = models.StatusLoadingMore
	} else {
		s.state.Page = models.PageState{Page: 1, Status: models.StatusLoading}
		s.state.Products = nil
		s.state.Expanded = make(map[int]bool)
		s.shown.Reset()
	}
	filter := s.state.Filter
	s.mu.Unlock()

	query := catalog.BuildQueryLimit(s.limit, page, filter.Sort)
	batch, err := s.source.Fetch(fetchCtx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token {
		s.logger.Debug("[showcase] Discarding stale response for page %d", page)
		return ErrStale
	}
	s.cancel = nil

	if err != nil {
		s.logger.Warn("[showcase] Fetch failed for page %d: %v", page, err)
		s.state.Page.Status = models.StatusError
		s.state.Page.Error = FetchErrorMessage
		if errors.Is(err, catalog.ErrFetchFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", catalog.ErrFetchFailed, err)
	}

	window := s.processor.Process(s.cleaner.Clean(batch), filter, page)

	added := 0
	for _, p := range window.Products {
		if s.shown.Add(p.ID) {
			s.state.Products = append(s.state.Products, p)
			added++
		}
	}
	if appendMode && added < len(window.Products) {
		s.logger.Debug("[showcase] Skipped %d already displayed products", len(window.Products)-added)
	}

	s.state.Page = models.PageState{
		Page:    page,
		HasMore: window.HasMore,
		Status:  models.StatusReady,
	}

	s.logger.Debug("[showcase] page=%d category=%s sort=%s search=%q matched=%d shown=%d",
		page, filter.Category, filter.Sort, strings.TrimSpace(filter.Search), window.Matched, len(s.state.Products))
	return nil
}

// Package server exposes the storefront sessions over an HTTP/JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"lumina-store/catalog"
	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/showcase"
	"lumina-store/utils"
)

type ctxKey struct{}

// Server routes API requests to sessions.
type Server struct {
	store        *SessionStore
	insights     *services.InsightService
	fetchTimeout time.Duration
	logger       *utils.Logger
	router       chi.Router
}

// New builds the router. fetchTimeout bounds each catalog fetch a request
// starts; zero means no deadline.
func New(store *SessionStore, fetchTimeout time.Duration, logger *utils.Logger) *Server {
	s := &Server{
		store:        store,
		insights:     services.NewInsightService(logger),
		fetchTimeout: fetchTimeout,
		logger:       logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.healthz)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(s.withSession)
			r.Get("/", s.getShowcase)
			r.Delete("/", s.deleteSession)
			r.Put("/filters", s.updateFilters)
			r.Put("/price/pending", s.updatePendingPrice)
			r.Post("/price/apply", s.applyPrice)
			r.Post("/more", s.loadMore)
			r.Post("/descriptions/{productID}/toggle", s.toggleDescription)
			r.Get("/cart", s.getCart)
			r.Post("/cart/items", s.addCartItem)
			r.Patch("/cart/items/{productID}", s.updateCartItem)
			r.Delete("/cart/items/{productID}", s.removeCartItem)
			r.Get("/insights", s.getInsights)
		})
	})

	s.router = r
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("[http] %s %s → %d (%v)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid session id")
			return
		}
		sess, ok := s.store.Get(id)
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
	})
}

// fetchContext detaches a pipeline run from the client connection. A client
// that hangs up must not leave the session in the fetch error state; the
// showcase still cancels the run when a newer one supersedes it.
func (s *Server) fetchContext(r *http.Request) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(r.Context())
	if s.fetchTimeout > 0 {
		return context.WithTimeout(ctx, s.fetchTimeout)
	}
	return context.WithCancel(ctx)
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(ctxKey{}).(*Session)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.store.Len()})
}

type sessionResponse struct {
	ID       uuid.UUID     `json:"id"`
	Showcase showcase.View `json:"showcase"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := s.store.Create()
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	err := sess.Showcase.Load(ctx)
	status := http.StatusCreated
	if err != nil && !errors.Is(err, showcase.ErrStale) {
		s.logger.Warn("[http] Initial load for %s failed: %v", sess.ID, err)
		status = http.StatusBadGateway
	}
	writeJSON(w, status, sessionResponse{ID: sess.ID, Showcase: sess.Showcase.View()})
}

func (s *Server) getShowcase(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionFrom(r).Showcase.View())
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.store.Delete(sessionFrom(r).ID)
	w.WriteHeader(http.StatusNoContent)
}

type filterRequest struct {
	Category *string `json:"category"`
	Sort     *string `json:"sort"`
	Search   *string `json:"search"`
}

func (s *Server) updateFilters(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !decode(w, r, &req) {
		return
	}

	var ch showcase.FilterChange
	if req.Category != nil {
		c, err := models.ParseCategory(*req.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ch.Category = &c
	}
	if req.Sort != nil {
		m, err := models.ParseSort(*req.Sort)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ch.Sort = &m
	}
	ch.Search = req.Search

	ctx, cancel := s.fetchContext(r)
	defer cancel()
	sc := sessionFrom(r).Showcase
	s.respondView(w, sc, sc.Change(ctx, ch))
}

type priceRequest struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

func (s *Server) updatePendingPrice(w http.ResponseWriter, r *http.Request) {
	var req priceRequest
	if !decode(w, r, &req) {
		return
	}
	sc := sessionFrom(r).Showcase
	if req.Min != nil {
		sc.SetPendingMin(*req.Min)
	}
	if req.Max != nil {
		sc.SetPendingMax(*req.Max)
	}
	writeJSON(w, http.StatusOK, sc.View())
}

func (s *Server) applyPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	sc := sessionFrom(r).Showcase
	s.respondView(w, sc, sc.ApplyPrice(ctx))
}

func (s *Server) loadMore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.fetchContext(r)
	defer cancel()
	sc := sessionFrom(r).Showcase
	s.respondView(w, sc, sc.LoadMore(ctx))
}

func (s *Server) toggleDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	sc := sessionFrom(r).Showcase
	if _, err := sc.ToggleDescription(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sc.View())
}

// respondView maps a pipeline error to a status and always returns the view.
func (s *Server) respondView(w http.ResponseWriter, sc *showcase.Showcase, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sc.View())
	case errors.Is(err, showcase.ErrPagingDisabled):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, showcase.ErrStale):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrFetchFailed):
		writeJSON(w, http.StatusBadGateway, sc.View())
	default:
		s.logger.Error("[http] Unexpected pipeline error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type cartItemResponse struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal string         `json:"subtotal"`
}

type cartResponse struct {
	Items      []cartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice string             `json:"total_price"`
}

func renderCart(c *services.Cart) cartResponse {
	resp := cartResponse{
		Items:      []cartItemResponse{},
		TotalItems: c.TotalItems(),
		TotalPrice: services.FormatCurrency(c.TotalPrice()),
	}
	for _, it := range c.Items() {
		resp.Items = append(resp.Items, cartItemResponse{
			Product:  it.Product,
			Quantity: it.Quantity,
			Subtotal: services.FormatCurrency(it.Subtotal()),
		})
	}
	return resp
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	var resp cartResponse
	sessionFrom(r).WithCart(func(c *services.Cart) { resp = renderCart(c) })
	writeJSON(w, http.StatusOK, resp)
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decode(w, r, &req) {
		return
	}
	sess := sessionFrom(r)
	p, err := sess.Showcase.Product(req.ProductID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var resp cartResponse
	sess.WithCart(func(c *services.Cart) {
		c.Add(p)
		resp = renderCart(c)
	})
	writeJSON(w, http.StatusOK, resp)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req quantityRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		resp  cartResponse
		found bool
	)
	sessionFrom(r).WithCart(func(c *services.Cart) {
		_, found = c.Item(id)
		c.UpdateQuantity(id, req.Quantity)
		resp = renderCart(c)
	})
	if !found {
		writeError(w, http.StatusNotFound, services.ErrItemNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var (
		resp cartResponse
		err  error
	)
	sessionFrom(r).WithCart(func(c *services.Cart) {
		err = c.Remove(id)
		resp = renderCart(c)
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getInsights(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r).Showcase.Snapshot()
	writeJSON(w, http.StatusOK, s.insights.Generate(st.Products))
}

func productID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

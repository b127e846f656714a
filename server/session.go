package server

import (
	"sync"

	"github.com/google/uuid"

	"lumina-store/catalog"
	"lumina-store/services"
	"lumina-store/showcase"
	"lumina-store/utils"
)

// Session is one shopper's in-memory state: the showcase and the cart.
type Session struct {
	ID       uuid.UUID
	Showcase *showcase.Showcase

	cartMu sync.Mutex
	cart   services.Cart
}

// WithCart runs fn with exclusive access to the session cart.
func (s *Session) WithCart(fn func(*services.Cart)) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	fn(&s.cart)
}

// SessionStore keeps sessions in process memory.
type SessionStore struct {
	source catalog.Source
	opts   showcase.Options
	logger *utils.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionStore creates an empty store whose sessions fetch from source.
func NewSessionStore(source catalog.Source, opts showcase.Options, logger *utils.Logger) *SessionStore {
	return &SessionStore{
		source:   source,
		opts:     opts,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create registers a new session.
func (st *SessionStore) Create() *Session {
	sess := &Session{
		ID:       uuid.New(),
		Showcase: showcase.New(st.source, st.opts, st.logger),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	st.logger.Debug("[sessions] Created %s", sess.ID)
	return sess
}

// Get looks a session up by id.
func (st *SessionStore) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// Delete discards a session and cancels its in-flight fetch.
func (st *SessionStore) Delete(id uuid.UUID) bool {
	st.mu.Lock()
	sess, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		sess.Showcase.Close()
	}
	return ok
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll cancels every in-flight fetch. Used on shutdown.
func (st *SessionStore) CloseAll() {
	st.mu.RLock()
	defer st.mu.RUnlock()
	for _, sess := range st.sessions {
		sess.Showcase.Close()
	}
}

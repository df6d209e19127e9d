package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/foodcart/internal/codec"
	"github.com/angelmondragon/foodcart/internal/notice"
	"github.com/angelmondragon/foodcart/internal/orders"
	"github.com/angelmondragon/foodcart/internal/render"
	"github.com/angelmondragon/foodcart/internal/storage"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
	"github.com/angelmondragon/foodcart/pkg/metrics"
)

// Session is one page session: its store and the page it renders into.
type Session struct {
	ID    string
	Store *Store
	Page  *render.Page
}

// DefaultIdleTTL is how long a session may go unopened before it is dropped.
const DefaultIdleTTL = 30 * time.Minute

// RegistryParams groups what every session store is built from.
type RegistryParams struct {
	Backend   storage.Backend
	Orders    *orders.Builder
	NoticeTTL time.Duration
	IdleTTL   time.Duration
	Clock     func() time.Time
	Logger    *logger.Logger
	Metrics   *metrics.StoreMetrics
}

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Registry keeps one Session per session id. Sessions not opened for IdleTTL
// are evicted; their persisted records stay in the backend and are loaded
// again on the next Open.
type Registry struct {
	params    RegistryParams
	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "storage backend is required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Orders == nil {
		params.Orders = orders.NewBuilder(orders.BuilderParams{})
	}
	if params.IdleTTL <= 0 {
		params.IdleTTL = DefaultIdleTTL
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	return &Registry{params: params, sessions: make(map[string]*entry)}, nil
}

// Open returns the session for id, reloading its state from the backend so
// writes made by other processes are picked up, like a page load.
func (r *Registry) Open(ctx context.Context, sessionID string) (*Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	sess, err := r.session(sessionID)
	if err != nil {
		return nil, err
	}
	ctx = r.params.Logger.WithSessionID(ctx, sessionID)
	if err := sess.Store.Load(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// Len reports how many sessions are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) session(sessionID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.params.Clock()
	r.sweepLocked(now)
	if e, ok := r.sessions[sessionID]; ok {
		e.lastSeen = now
		return e.sess, nil
	}

	page := render.NewPage()
	st, err := New(Params{
		Codec:    codec.New(r.params.Backend.Session(sessionID), r.params.Logger, r.params.Metrics),
		Orders:   r.params.Orders,
		Renderer: page,
		Notices:  notice.NewBoard(r.params.NoticeTTL, r.params.Clock),
		Logger:   r.params.Logger,
		Metrics:  r.params.Metrics,
	})
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: sessionID, Store: st, Page: page}
	r.sessions[sessionID] = &entry{sess: sess, lastSeen: now}
	return sess, nil
}

// sweepLocked drops idle sessions. It walks the map at most once per
// sweepInterval so a busy registry does not pay for it on every request.
func (r *Registry) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.sweepInterval() {
		return
	}
	r.lastSweep = now
	cutoff := now.Add(-r.params.IdleTTL)
	evicted := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		r.params.Logger.Info(r.params.Logger.WithField(context.Background(), "evicted", evicted), "registry.sessions_evicted")
	}
}

func (r *Registry) sweepInterval() time.Duration {
	if r.params.IdleTTL < time.Minute {
		return r.params.IdleTTL
	}
	return time.Minute
}

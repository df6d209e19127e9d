// Package store owns one page session's cart, order history, shipping details
// and login flag. Every mutation runs under the session lock, is persisted
// through the codec before it returns, and is followed by a synchronous render.
//
// A failed write restores the previously persisted records, posts an alert, and
// returns a STORAGE_WRITE_FAILURE error so the caller can retry. When the
// restore fails too, the state is reloaded so memory matches the backend.
package store

import (
	"context"
	"sync"

	"github.com/angelmondragon/foodcart/internal/codec"
	"github.com/angelmondragon/foodcart/internal/notice"
	"github.com/angelmondragon/foodcart/internal/orders"
	"github.com/angelmondragon/foodcart/internal/render"
	"github.com/angelmondragon/foodcart/internal/schema"
	pkgerrors "github.com/angelmondragon/foodcart/pkg/errors"
	"github.com/angelmondragon/foodcart/pkg/logger"
	"github.com/angelmondragon/foodcart/pkg/metrics"
)

// ErrNotLoaded is returned by mutations issued before Load.
var ErrNotLoaded = pkgerrors.New(pkgerrors.CodeNotLoaded, "store must be loaded before it is mutated")

// Params groups the dependencies of a Store.
type Params struct {
	Codec    *codec.Codec
	Orders   *orders.Builder
	Renderer render.Renderer
	Notices  *notice.Board
	Logger   *logger.Logger
	Metrics  *metrics.StoreMetrics
}

// Store is the cart/order store of a single session.
type Store struct {
	mu       sync.Mutex
	codec    *codec.Codec
	orders   *orders.Builder
	renderer render.Renderer
	notices  *notice.Board
	logg     *logger.Logger
	metrics  *metrics.StoreMetrics

	state  schema.State
	loaded bool
}

// New validates params and returns an unloaded store.
func New(params Params) (*Store, error) {
	if params.Codec == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "codec is required")
	}
	s := &Store{
		codec:    params.Codec,
		orders:   params.Orders,
		renderer: params.Renderer,
		notices:  params.Notices,
		logg:     params.Logger,
		metrics:  params.Metrics,
		state:    schema.Empty(),
	}
	if s.orders == nil {
		s.orders = orders.NewBuilder(orders.BuilderParams{})
	}
	if s.renderer == nil {
		s.renderer = render.Nop
	}
	if s.notices == nil {
		s.notices = notice.NewBoard(notice.DefaultAlertTTL, nil)
	}
	if s.logg == nil {
		s.logg = logger.Nop()
	}
	return s, nil
}

// Load (re)hydrates the state from the persisted store and renders it. It is
// the page-load step: records written by other entry points become visible.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.codec.Load(ctx)
	if err != nil {
		s.logg.Error(ctx, "store.load_failed", err)
		return err
	}
	s.state = st
	s.loaded = true
	s.renderer.Render(ctx, s.state.Clone())
	return nil
}

// State returns a copy of the current state.
func (s *Store) State() schema.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Loaded reports whether Load has succeeded at least once.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Notices exposes the session's notice board.
func (s *Store) Notices() *notice.Board {
	return s.notices
}

// mutate applies fn under the lock. When fn reports a change, the new state is
// saved and rendered; a failed save restores the previous state.
func (s *Store) mutate(ctx context.Context, op string, fn func(st *schema.State) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutateLocked(ctx, op, fn)
}

func (s *Store) mutateLocked(ctx context.Context, op string, fn func(st *schema.State) bool) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	before := s.state.Clone()
	if !fn(&s.state) {
		return nil
	}
	if err := s.codec.Save(ctx, s.state); err != nil {
		s.restore(ctx, op, before)
		s.failed(ctx, op, err)
		return err
	}
	s.metrics.IncMutation(op)
	s.renderer.Render(ctx, s.state.Clone())
	return nil
}

// restore rewrites before over a partially applied save. If that fails as well
// the state becomes whatever the backend now holds.
func (s *Store) restore(ctx context.Context, op string, before schema.State) {
	s.state = before
	err := s.codec.Save(ctx, before)
	if err == nil {
		return
	}
	s.logg.Error(s.logg.WithField(ctx, "op", op), "store.restore_failed", err)
	st, loadErr := s.codec.Load(ctx)
	if loadErr != nil {
		s.logg.Error(s.logg.WithField(ctx, "op", op), "store.reload_failed", loadErr)
		return
	}
	s.state = st
	s.renderer.Render(ctx, s.state.Clone())
}

func (s *Store) failed(ctx context.Context, op string, err error) {
	code := pkgerrors.CodeInternal
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
	}
	s.notices.Alert(pkgerrors.MetadataFor(code).PublicMessage)
	s.logg.Error(s.logg.WithField(ctx, "op", op), "store.save_failed", err)
}

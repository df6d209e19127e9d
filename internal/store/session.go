package store

import (
	"context"

	"github.com/angelmondragon/foodcart/internal/schema"
)

// Login sets the session flag. There is no credential check.
func (s *Store) Login(ctx context.Context) error {
	return s.mutate(ctx, "login", func(st *schema.State) bool {
		st.LoggedIn = true
		return true
	})
}

// Logout clears the flag together with the cart, the order history and the
// saved shipping details. It succeeds on an already empty session.
func (s *Store) Logout(ctx context.Context) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return Outcome{}, ErrNotLoaded
	}
	if err := s.codec.Reset(ctx); err != nil {
		// Reset may have written some keys; reload what is actually persisted.
		if st, loadErr := s.codec.Load(ctx); loadErr == nil {
			s.state = st
		}
		s.failed(ctx, "logout", err)
		return Outcome{}, err
	}

	s.state = schema.Empty()
	s.metrics.IncMutation("logout")
	s.renderer.Render(ctx, s.state.Clone())
	s.notices.Alert(MessageLoggedOut)
	return Outcome{Redirect: schema.PageIndex, Notice: MessageLoggedOut}, nil
}

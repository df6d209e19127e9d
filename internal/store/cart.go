package store

import (
	"context"
	"math"

	"github.com/angelmondragon/foodcart/internal/notice"
	"github.com/angelmondragon/foodcart/internal/schema"
)

const (
	MessageLoginToAdd = "Please log in to add items to your cart."
	MessageCartEmpty  = "Your cart is empty."
	MessageLoggedOut  = "You have been logged out."
)

// Outcome tells the caller what to show or where to go after an operation.
// Redirect is empty when the caller should stay on the current page.
type Outcome struct {
	Redirect schema.Page   `json:"redirect,omitempty"`
	Notice   string        `json:"notice,omitempty"`
	Order    *schema.Order `json:"order,omitempty"`
}

// AddItem puts one unit of item in the cart: an existing line with the same id
// gains one, otherwise a new line with quantity 1 is appended.
func (s *Store) AddItem(ctx context.Context, item schema.LineItem) error {
	err := s.mutate(ctx, "add", func(st *schema.State) bool {
		if idx := st.Cart.IndexOf(item.ID); idx >= 0 {
			st.Cart[idx].Quantity = addQuantity(st.Cart[idx].Quantity, 1)
			return true
		}
		item.Quantity = 1
		st.Cart = append(st.Cart, item)
		return true
	})
	if err == nil {
		s.notices.Post(notice.KindBump, item.Name)
	}
	return err
}

// AddFromCatalog is the catalog click handler: it refuses while logged out,
// and with buyNow sends the user straight to checkout.
func (s *Store) AddFromCatalog(ctx context.Context, item schema.LineItem, buyNow bool) (Outcome, error) {
	if !s.State().LoggedIn {
		s.notices.Alert(MessageLoginToAdd)
		return Outcome{Notice: MessageLoginToAdd}, nil
	}
	if err := s.AddItem(ctx, item); err != nil {
		return Outcome{}, err
	}
	if buyNow {
		return Outcome{Redirect: schema.PageCheckout}, nil
	}
	return Outcome{}, nil
}

// ChangeQuantity adds delta to the line with id. A result ≤ 0 removes the line.
// An unknown id leaves the cart untouched but the cart is still saved and
// redrawn, like any other click.
func (s *Store) ChangeQuantity(ctx context.Context, id string, delta int) error {
	return s.mutate(ctx, "change_quantity", func(st *schema.State) bool {
		idx := st.Cart.IndexOf(id)
		switch {
		case idx < 0:
		case delta <= -st.Cart[idx].Quantity:
			st.Cart = append(st.Cart[:idx:idx], st.Cart[idx+1:]...)
		default:
			st.Cart[idx].Quantity = addQuantity(st.Cart[idx].Quantity, delta)
		}
		return true
	})
}

// RemoveItem drops the line with id regardless of its quantity.
func (s *Store) RemoveItem(ctx context.Context, id string) error {
	return s.ChangeQuantity(ctx, id, math.MinInt)
}

// Totals returns the item count and total price of the cart.
func (s *Store) Totals() (count, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Cart.Totals()
}

// BeginCheckout guards the checkout page: an empty cart keeps the user on the
// storefront with a notice.
func (s *Store) BeginCheckout(ctx context.Context) (Outcome, error) {
	if !s.Loaded() {
		return Outcome{}, ErrNotLoaded
	}
	if count, _ := s.Totals(); count == 0 {
		s.notices.Alert(MessageCartEmpty)
		return Outcome{Redirect: schema.PageIndex, Notice: MessageCartEmpty}, nil
	}
	return Outcome{Redirect: schema.PageCheckout}, nil
}

func addQuantity(q, delta int) int {
	if delta > 0 && q > math.MaxInt-delta {
		return math.MaxInt
	}
	return q + delta
}

// EnterCheckout guards the checkout page itself: landing there with an empty
// cart bounces back to the storefront without a notice.
func (s *Store) EnterCheckout() (Outcome, error) {
	if !s.Loaded() {
		return Outcome{}, ErrNotLoaded
	}
	if count, _ := s.Totals(); count == 0 {
		return Outcome{Redirect: schema.PageIndex}, nil
	}
	return Outcome{}, nil
}

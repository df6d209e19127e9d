package store

import (
	"context"

	"github.com/angelmondragon/foodcart/internal/orders"
	"github.com/angelmondragon/foodcart/internal/schema"
)

// Commit places the order: the cart is snapshotted into a new order at the top
// of history, shipping becomes the saved prefill and the cart is emptied. An
// empty cart sends the user back to the storefront without creating an order.
func (s *Store) Commit(ctx context.Context, shipping schema.ShippingDetails) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return Outcome{}, ErrNotLoaded
	}
	if len(s.state.Cart) == 0 {
		s.notices.Alert(MessageCartEmpty)
		return Outcome{Redirect: schema.PageIndex, Notice: MessageCartEmpty}, nil
	}

	var order schema.Order
	err := s.mutateLocked(ctx, "commit", func(st *schema.State) bool {
		order = s.orders.Build(st.Cart, shipping)
		st.Orders = orders.Prepend(st.Orders, order)
		st.Shipping = shipping
		st.Cart = schema.Cart{}
		return true
	})
	if err != nil {
		return Outcome{}, err
	}

	s.metrics.ObserveOrder(order.Total)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	}), "store.order_committed")

	return Outcome{Redirect: schema.PageOrders, Order: &order}, nil
}

// Package orders turns a cart into an immutable order snapshot and maintains
// the most-recent-first order history.
package orders

import (
	"time"

	"github.com/angelmondragon/foodcart/internal/schema"
)

// DefaultDateLayout renders dates the way an en-IN locale does (D/M/YYYY).
const DefaultDateLayout = "2/1/2006"

// Builder snapshots carts into orders.
type Builder struct {
	ids        IDGenerator
	now        func() time.Time
	loc        *time.Location
	dateLayout string
}

// BuilderParams groups the builder dependencies; zero values fall back to UUID
// ids, time.Now, UTC and DefaultDateLayout.
type BuilderParams struct {
	IDs        IDGenerator
	Clock      func() time.Time
	Location   *time.Location
	DateLayout string
}

func NewBuilder(params BuilderParams) *Builder {
	b := &Builder{
		ids:        params.IDs,
		now:        params.Clock,
		loc:        params.Location,
		dateLayout: params.DateLayout,
	}
	if b.ids == nil {
		b.ids = UUIDGenerator{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.loc == nil {
		b.loc = time.UTC
	}
	if b.dateLayout == "" {
		b.dateLayout = DefaultDateLayout
	}
	return b
}

// Build snapshots cart and shipping. The returned order shares no memory with
// its inputs, so later cart edits never reach history.
func (b *Builder) Build(cart schema.Cart, shipping schema.ShippingDetails) schema.Order {
	now := b.now()
	_, total := cart.Totals()
	return schema.Order{
		ID:       b.ids.NewID(now),
		Date:     now.In(b.loc).Format(b.dateLayout),
		Items:    cart.Clone(),
		Total:    total,
		Shipping: shipping,
	}
}

// Prepend returns a new history with order first.
func Prepend(history []schema.Order, order schema.Order) []schema.Order {
	out := make([]schema.Order, 0, len(history)+1)
	out = append(out, order)
	return append(out, history...)
}

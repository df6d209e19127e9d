package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	count, total := Cart{}.Totals()
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, total)

	count, total = Cart(nil).Totals()
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, total)

	cart := Cart{
		{ID: "a", Price: 100, Quantity: 2},
		{ID: "b", Price: 50, Quantity: 1},
	}
	count, total = cart.Totals()
	assert.Equal(t, 3, count)
	assert.Equal(t, 250, total)
}

func TestCartIndexOf(t *testing.T) {
	cart := Cart{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, cart.IndexOf("b"))
	assert.Equal(t, -1, cart.IndexOf("z"))
}

func TestStateCloneIsDeep(t *testing.T) {
	st := State{
		Cart:   Cart{{ID: "a", Quantity: 1}},
		Orders: []Order{{ID: "o1", Items: Cart{{ID: "a", Quantity: 1}}}},
	}
	cp := st.Clone()
	cp.Cart[0].Quantity = 9
	cp.Orders[0].Items[0].Quantity = 9

	assert.Equal(t, 1, st.Cart[0].Quantity)
	assert.Equal(t, 1, st.Orders[0].Items[0].Quantity)
}

func TestShippingIsZero(t *testing.T) {
	assert.True(t, ShippingDetails{}.IsZero())
	assert.False(t, ShippingDetails{Phone: "555"}.IsZero())
}

func TestEmptyStateHasNonNilSlices(t *testing.T) {
	st := Empty()
	assert.NotNil(t, st.Cart)
	assert.NotNil(t, st.Orders)
	assert.False(t, st.LoggedIn)
}

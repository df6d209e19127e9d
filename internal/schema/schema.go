// Package schema is the persisted record layout shared by every entry point
// (catalog, checkout, CLI). Key names and JSON field names match the records the
// storefront pages have always written, so existing saved carts keep loading.
package schema

// Persisted record keys inside a session namespace.
const (
	KeyCart     = "foodCart"
	KeyOrders   = "foodOrders"
	KeyShipping = "foodUserDetails"
	KeyLoggedIn = "foodUserLogin"
)

// Keys lists every record a session owns, in save order. Orders come first so a
// save interrupted after them never drops a placed order.
var Keys = []string{KeyOrders, KeyCart, KeyShipping, KeyLoggedIn}

// LineItem is one catalog entry in the cart. Price is in whole rupees.
type LineItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// Subtotal is price × quantity.
func (li LineItem) Subtotal() int {
	return li.Price * li.Quantity
}

// Cart is ordered and unique by LineItem.ID.
type Cart []LineItem

// Totals returns the item count and the total price.
func (c Cart) Totals() (count, total int) {
	for _, item := range c {
		count += item.Quantity
		total += item.Subtotal()
	}
	return count, total
}

// IndexOf returns the position of id, or -1.
func (c Cart) IndexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// ShippingDetails is the checkout form. No field is format-checked.
type ShippingDetails struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	PinCode  string `json:"pinCode"`
	Phone    string `json:"phone"`
}

// IsZero reports whether no field has been filled.
func (s ShippingDetails) IsZero() bool {
	return s == ShippingDetails{}
}

// Order is an immutable snapshot created at checkout.
type Order struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Items    Cart            `json:"items"`
	Total    int             `json:"total"`
	Shipping ShippingDetails `json:"shipping"`
}

// State is everything one page session owns.
type State struct {
	Cart     Cart
	Orders   []Order
	Shipping ShippingDetails
	LoggedIn bool
}

// Empty returns the neutral state used for new sessions and after logout.
func Empty() State {
	return State{Cart: Cart{}, Orders: []Order{}}
}

// Clone deep-copies s so a failed write can be rolled back.
func (s State) Clone() State {
	out := State{
		Cart:     s.Cart.Clone(),
		Orders:   make([]Order, len(s.Orders)),
		Shipping: s.Shipping,
		LoggedIn: s.LoggedIn,
	}
	for i, o := range s.Orders {
		o.Items = o.Items.Clone()
		out.Orders[i] = o
	}
	return out
}

// Page names a navigation target. The core only signals intent; callers perform
// the redirect.
type Page string

const (
	PageIndex    Page = "index.html"
	PageOrders   Page = "index.html#orders"
	PageCheckout Page = "checkout.html"
	PageLogin    Page = "login.html"
)

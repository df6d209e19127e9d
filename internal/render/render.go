// Package render rebuilds the page fragments (cart panel, order history,
// checkout summary, login button) from a session's state. The store calls a
// Renderer synchronously after every successful mutation.
package render

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/foodcart/internal/schema"
)

const (
	MessageCartEmpty   = "Your cart is empty."
	MessageOrdersLogin = "Please log in to see your order history."
	MessageOrdersNone  = "You have no past orders."
	loginLabel         = "Login"
	logoutLabel        = "Logout"
)

// Renderer is told that state changed and must be redrawn.
type Renderer interface {
	Render(ctx context.Context, st schema.State)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, st schema.State)

func (fn RendererFunc) Render(ctx context.Context, st schema.State) { fn(ctx, st) }

// Nop ignores every render.
var Nop Renderer = RendererFunc(func(context.Context, schema.State) {})

// Rupees formats a whole-rupee amount the way the storefront prints prices.
func Rupees(amount int) string {
	return fmt.Sprintf("RS %d", amount)
}

type CartLine struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Price      int    `json:"price"`
	PriceLabel string `json:"price_label"`
	Quantity   int    `json:"quantity"`
}

type CartPanel struct {
	Items        []CartLine `json:"items"`
	EmptyMessage string     `json:"empty_message,omitempty"`
	Count        int        `json:"count"`
	Total        int        `json:"total"`
	TotalLabel   string     `json:"total_label"`
}

type SummaryLine struct {
	Label       string `json:"label"`
	AmountLabel string `json:"amount_label"`
}

type OrderCard struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Date       string        `json:"date"`
	ShippedTo  string        `json:"shipped_to"`
	Address    string        `json:"address"`
	Contact    string        `json:"contact"`
	Items      []SummaryLine `json:"items"`
	TotalLabel string        `json:"total_label"`
}

type OrderHistory struct {
	Message string      `json:"message,omitempty"`
	Orders  []OrderCard `json:"orders"`
}

type CheckoutSummary struct {
	Lines      []SummaryLine `json:"lines"`
	Total      int           `json:"total"`
	TotalLabel string        `json:"total_label"`
}

type LoginButton struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// View is every fragment of the storefront for one state.
type View struct {
	Cart     CartPanel              `json:"cart"`
	Orders   OrderHistory           `json:"orders"`
	Checkout CheckoutSummary        `json:"checkout"`
	Prefill  schema.ShippingDetails `json:"prefill"`
	Login    LoginButton            `json:"login"`
}

// Build renders st into a View.
func Build(st schema.State) View {
	return View{
		Cart:     cartPanel(st.Cart),
		Orders:   orderHistory(st),
		Checkout: checkoutSummary(st.Cart),
		Prefill:  st.Shipping,
		Login:    loginButton(st.LoggedIn),
	}
}

func cartPanel(cart schema.Cart) CartPanel {
	count, total := cart.Totals()
	panel := CartPanel{
		Items:      make([]CartLine, 0, len(cart)),
		Count:      count,
		Total:      total,
		TotalLabel: Rupees(total),
	}
	if len(cart) == 0 {
		panel.EmptyMessage = MessageCartEmpty
	}
	for _, item := range cart {
		panel.Items = append(panel.Items, CartLine{
			ID:         item.ID,
			Name:       item.Name,
			Image:      item.Image,
			Price:      item.Price,
			PriceLabel: Rupees(item.Price),
			Quantity:   item.Quantity,
		})
	}
	return panel
}

func summaryLines(cart schema.Cart) []SummaryLine {
	lines := make([]SummaryLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, SummaryLine{
			Label:       fmt.Sprintf("%s (x%d)", item.Name, item.Quantity),
			AmountLabel: Rupees(item.Subtotal()),
		})
	}
	return lines
}

// orderHistory is hidden while logged out.
func orderHistory(st schema.State) OrderHistory {
	h := OrderHistory{Orders: []OrderCard{}}
	switch {
	case !st.LoggedIn:
		h.Message = MessageOrdersLogin
		return h
	case len(st.Orders) == 0:
		h.Message = MessageOrdersNone
		return h
	}
	for _, o := range st.Orders {
		h.Orders = append(h.Orders, OrderCard{
			ID:         o.ID,
			Title:      "Order #" + o.ID,
			Date:       o.Date,
			ShippedTo:  o.Shipping.FullName,
			Address:    fmt.Sprintf("%s, %s", o.Shipping.Address, o.Shipping.PinCode),
			Contact:    o.Shipping.Phone,
			Items:      summaryLines(o.Items),
			TotalLabel: "Total: " + Rupees(o.Total),
		})
	}
	return h
}

func checkoutSummary(cart schema.Cart) CheckoutSummary {
	_, total := cart.Totals()
	return CheckoutSummary{
		Lines:      summaryLines(cart),
		Total:      total,
		TotalLabel: Rupees(total),
	}
}

func loginButton(loggedIn bool) LoginButton {
	if loggedIn {
		return LoginButton{Label: logoutLabel, Href: "#"}
	}
	return LoginButton{Label: loginLabel, Href: string(schema.PageLogin)}
}

// Page keeps the most recent View of one session.
type Page struct {
	mu      sync.RWMutex
	view    View
	renders int
}

func NewPage() *Page {
	return &Page{view: Build(schema.Empty())}
}

func (p *Page) Render(_ context.Context, st schema.State) {
	v := Build(st)
	p.mu.Lock()
	p.view = v
	p.renders++
	p.mu.Unlock()
}

// View returns the last rendered view.
func (p *Page) View() View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Renders counts how many times the page was redrawn.
func (p *Page) Renders() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.renders
}

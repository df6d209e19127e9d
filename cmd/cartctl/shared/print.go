package shared

import (
	"fmt"
	"io"

	"github.com/angelmondragon/foodcart/internal/notice"
	"github.com/angelmondragon/foodcart/internal/render"
	"github.com/angelmondragon/foodcart/internal/store"
)

// PrintCart writes the cart panel.
func PrintCart(w io.Writer, panel render.CartPanel) {
	if panel.EmptyMessage != "" {
		fmt.Fprintln(w, panel.EmptyMessage)
		return
	}
	for _, line := range panel.Items {
		fmt.Fprintf(w, "%-8s %-24s %4d × %s\n", line.ID, line.Name, line.Quantity, line.PriceLabel)
	}
	fmt.Fprintf(w, "Items: %d  Total: %s\n", panel.Count, panel.TotalLabel)
}

// PrintOrders writes the order history panel.
func PrintOrders(w io.Writer, history render.OrderHistory) {
	if history.Message != "" {
		fmt.Fprintln(w, history.Message)
		return
	}
	for _, o := range history.Orders {
		fmt.Fprintf(w, "%s  %s\n", o.Title, o.Date)
		fmt.Fprintf(w, "  Shipped to: %s, %s (%s)\n", o.ShippedTo, o.Address, o.Contact)
		for _, line := range o.Items {
			fmt.Fprintf(w, "  %-28s %s\n", line.Label, line.AmountLabel)
		}
		fmt.Fprintf(w, "  %s\n", o.TotalLabel)
	}
}

// PrintNotices writes every notice still on screen.
func PrintNotices(w io.Writer, notices []notice.Notice) {
	for _, n := range notices {
		if n.Kind == notice.KindBump {
			fmt.Fprintf(w, "+ %s\n", n.Message)
			continue
		}
		fmt.Fprintf(w, "! %s\n", n.Message)
	}
}

// PrintOutcome writes the notices and the page the user would land on.
func PrintOutcome(w io.Writer, env *Env, out store.Outcome) {
	PrintNotices(w, env.Store().Notices().All())
	if out.Redirect != "" {
		fmt.Fprintf(w, "→ %s\n", out.Redirect)
	}
}

// Package checkoutcmd implements the `cartctl checkout` command.
package checkoutcmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
	"github.com/angelmondragon/foodcart/internal/schema"
)

// Command implements `cartctl checkout`.
type Command struct {
	ctx      *shared.Context
	cmd      *cobra.Command
	shipping schema.ShippingDetails
}

// New creates the checkout command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Long: "Place an order for the cart. Shipping fields not given as flags are " +
			"taken from the details saved by the previous order.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}
	f := c.cmd.Flags()
	f.StringVar(&c.shipping.FullName, "name", "", "Full name")
	f.StringVar(&c.shipping.Address, "address", "", "Street address")
	f.StringVar(&c.shipping.PinCode, "pin", "", "PIN code")
	f.StringVar(&c.shipping.Phone, "phone", "", "Phone number")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	env, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	out, err := env.Store().BeginCheckout(cmd.Context())
	if err != nil {
		return err
	}
	if out.Redirect != schema.PageCheckout {
		shared.PrintOutcome(cmd.OutOrStdout(), env, out)
		return nil
	}

	shipping := prefill(c.shipping, env.Store().State().Shipping)
	if missing := missingFields(shipping); len(missing) > 0 {
		return fmt.Errorf("missing shipping details: %s", strings.Join(missing, ", "))
	}

	out, err = env.Store().Commit(cmd.Context(), shipping)
	if err != nil {
		return err
	}
	if out.Order != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Placed order #%s for %d\n", out.Order.ID, out.Order.Total)
	}
	shared.PrintOutcome(cmd.OutOrStdout(), env, out)
	return nil
}

func prefill(given, saved schema.ShippingDetails) schema.ShippingDetails {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return schema.ShippingDetails{
		FullName: pick(given.FullName, saved.FullName),
		Address:  pick(given.Address, saved.Address),
		PinCode:  pick(given.PinCode, saved.PinCode),
		Phone:    pick(given.Phone, saved.Phone),
	}
}

func missingFields(s schema.ShippingDetails) []string {
	var missing []string
	for _, f := range []struct {
		flag  string
		value string
	}{
		{"--name", s.FullName},
		{"--address", s.Address},
		{"--pin", s.PinCode},
		{"--phone", s.Phone},
	} {
		if f.value == "" {
			missing = append(missing, f.flag)
		}
	}
	return missing
}

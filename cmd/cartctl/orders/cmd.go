// Package orderscmd implements the `cartctl orders` command.
package orderscmd

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// Command implements `cartctl orders`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the orders command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "orders",
		Short: "Show the order history, newest first",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
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

	shared.PrintOrders(cmd.OutOrStdout(), env.Session.Page.View().Orders)
	return nil
}

// Package cartcmd implements the `cartctl cart` command.
package cartcmd

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// Command implements `cartctl cart`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the cart command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
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

	shared.PrintCart(cmd.OutOrStdout(), env.Session.Page.View().Cart)
	return nil
}

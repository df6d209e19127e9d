// Package removecmd implements the `cartctl remove` command.
package removecmd

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
	"github.com/angelmondragon/foodcart/internal/render"
)

// Command implements `cartctl remove`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the remove command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	env, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Store().RemoveItem(cmd.Context(), args[0]); err != nil {
		return err
	}
	shared.PrintCart(cmd.OutOrStdout(), render.Build(env.Store().State()).Cart)
	return nil
}

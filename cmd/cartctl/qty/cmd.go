// Package qtycmd implements the `cartctl qty` command.
package qtycmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
	"github.com/angelmondragon/foodcart/internal/render"
)

// Command implements `cartctl qty`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the qty command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "qty <item-id> <delta>",
		Short:   "Change the quantity of a cart line; reaching zero removes it",
		Example: "  cartctl qty p1 2\n  cartctl qty p1 -1",
		Args:    cobra.ExactArgs(2),
		RunE:    c.run,
	}
	// "-1" is a delta, not a flag.
	c.cmd.Flags().SetInterspersed(false)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("delta must be an integer: %w", err)
	}

	env, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Store().ChangeQuantity(cmd.Context(), args[0], delta); err != nil {
		return err
	}
	shared.PrintCart(cmd.OutOrStdout(), render.Build(env.Store().State()).Cart)
	return nil
}

// Package addcmd implements the `cartctl add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// Command implements `cartctl add`.
type Command struct {
	ctx    *shared.Context
	cmd    *cobra.Command
	buyNow bool
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <menu-id>",
		Short: "Add one unit of a menu item to the cart",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.buyNow, "buy-now", false, "Go straight to checkout after adding")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	menu, err := c.ctx.LoadMenu()
	if err != nil {
		return err
	}
	entry, ok := menu.Find(args[0])
	if !ok {
		return fmt.Errorf("no menu item %q", args[0])
	}
	item, err := entry.LineItem()
	if err != nil {
		return err
	}

	env, err := c.ctx.Open(cmd.Context())
	if err != nil {
		return err
	}
	defer env.Close()

	out, err := env.Store().AddFromCatalog(cmd.Context(), item, c.buyNow)
	if err != nil {
		return err
	}
	shared.PrintOutcome(cmd.OutOrStdout(), env, out)
	return nil
}

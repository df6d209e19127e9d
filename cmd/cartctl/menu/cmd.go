// Package menucmd implements the `cartctl menu` command.
package menucmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
	"github.com/angelmondragon/foodcart/internal/render"
)

// Command implements `cartctl menu`.
type Command struct {
	ctx      *shared.Context
	cmd      *cobra.Command
	category string
}

// New creates the menu command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "menu",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().StringVar(&c.category, "category", "", "Only show this category")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	menu, err := c.ctx.LoadMenu()
	if err != nil {
		return err
	}
	for _, it := range menu.Items {
		if c.category != "" && it.Category != c.category {
			continue
		}
		li, err := it.LineItem()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-24s %-10s %s\n", li.ID, li.Name, render.Rupees(li.Price), it.Category)
	}
	return nil
}

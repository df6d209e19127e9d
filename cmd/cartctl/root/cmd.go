// Package rootcmd wires the root cobra.Command for the cartctl binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	addcmd "github.com/angelmondragon/foodcart/cmd/cartctl/add"
	cartcmd "github.com/angelmondragon/foodcart/cmd/cartctl/cart"
	checkoutcmd "github.com/angelmondragon/foodcart/cmd/cartctl/checkout"
	logincmd "github.com/angelmondragon/foodcart/cmd/cartctl/login"
	logoutcmd "github.com/angelmondragon/foodcart/cmd/cartctl/logout"
	menucmd "github.com/angelmondragon/foodcart/cmd/cartctl/menu"
	orderscmd "github.com/angelmondragon/foodcart/cmd/cartctl/orders"
	qtycmd "github.com/angelmondragon/foodcart/cmd/cartctl/qty"
	removecmd "github.com/angelmondragon/foodcart/cmd/cartctl/remove"
	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// New creates and returns the root cobra.Command for cartctl.
func New() *cobra.Command {
	return NewWithContext(&shared.Context{})
}

// NewWithContext builds the command tree around an existing context.
func NewWithContext(ctx *shared.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Drive a foodcart session from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	root.PersistentFlags().StringVar(
		&ctx.Session, "session", "",
		"Session to operate on (default: $FOODCART_SESSION → \"cli\")",
	)
	root.PersistentFlags().StringVar(
		&ctx.MenuPath, "menu", "",
		"Menu file (default: $FOODCART_MENU_PATH → menu.yaml)",
	)

	root.AddCommand(
		menucmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		qtycmd.New(ctx).Cmd(),
		removecmd.New(ctx).Cmd(),
		cartcmd.New(ctx).Cmd(),
		checkoutcmd.New(ctx).Cmd(),
		orderscmd.New(ctx).Cmd(),
		logincmd.New(ctx).Cmd(),
		logoutcmd.New(ctx).Cmd(),
	)

	return root
}

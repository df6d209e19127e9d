// Package logoutcmd implements the `cartctl logout` command.
package logoutcmd

import (
	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// Command implements `cartctl logout`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the logout command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "logout",
		Short: "Log out, clearing the cart, order history and saved shipping details",
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

	out, err := env.Store().Logout(cmd.Context())
	if err != nil {
		return err
	}
	shared.PrintOutcome(cmd.OutOrStdout(), env, out)
	return nil
}

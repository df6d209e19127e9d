// Package logincmd implements the `cartctl login` command.
package logincmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelmondragon/foodcart/cmd/cartctl/shared"
)

// Command implements `cartctl login`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the login command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "login",
		Short: "Mark the session as logged in",
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

	if err := env.Store().Login(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as session %s\n", env.Session.ID)
	return nil
}

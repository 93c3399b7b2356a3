package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type LogoutCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *LogoutCommand) Synopsis() string {
	return "Forget the saved session"
}

func (c *LogoutCommand) Help() string {
	return `Usage: cocobase auth logout [options]

  Clear the saved access token so later commands run unauthenticated.` + c.Flags().Help()
}

func (c *LogoutCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("logout", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	return f
}

func (c *LogoutCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	// Client.Logout leaves the stored token in place.
	sess.Client.SetToken(ctx, "")

	c.UI.Info("Logged out")
	return 0
}

package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/pkg/cocobase"
)

type WhoamiCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *WhoamiCommand) Synopsis() string {
	return "Print the logged in user"
}

func (c *WhoamiCommand) Help() string {
	return `Usage: cocobase auth whoami [options]

  Fetch the current user from the backend and print it.` + c.Flags().Help()
}

func (c *WhoamiCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("whoami", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	return f
}

func (c *WhoamiCommand) Run(args []string) int {
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

	user, err := sess.Client.GetCurrentUser(ctx)
	if errors.Is(err, cocobase.ErrUnauthenticated) {
		c.UI.Error("not logged in, run: cocobase auth login <email>")
		return 1
	}
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(c.flags.Format, user); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

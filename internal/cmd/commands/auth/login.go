package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type LoginCommand struct {
	*base.Command

	flags        base.ClientFlags
	flagPassword string
}

func (c *LoginCommand) Synopsis() string {
	return "Log in and save the session"
}

func (c *LoginCommand) Help() string {
	return `Usage: cocobase auth login [options] <email>

  Log in with an email and password. The password is prompted for when
  -password is not given.` + c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagPassword, "password", "", "Account password.")
	return f
}

func (c *LoginCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <email>")
		return 1
	}

	pw, err := password(c.Command, c.flagPassword)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	if err := sess.Client.Login(ctx, f.Arg(0), pw); err != nil {
		c.UI.Error(fmt.Sprintf("login failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Logged in as %s", sess.Client.User().Email))
	return 0
}

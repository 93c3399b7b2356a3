package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type RegisterCommand struct {
	*base.Command

	flags        base.ClientFlags
	flagPassword string
	flagData     string
	flagFile     string
}

func (c *RegisterCommand) Synopsis() string {
	return "Create an account and save the session"
}

func (c *RegisterCommand) Help() string {
	return `Usage: cocobase auth register [options] <email>

  Create an account. Extra profile data can be given as JSON with -data or
  in a JSON or YAML file with -file.` + c.Flags().Help()
}

func (c *RegisterCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("register", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagPassword, "password", "", "Account password.")
	f.StringVar(&c.flagData, "data", "", "Profile data as a JSON object.")
	f.StringVar(&c.flagFile, "file", "", "Path to a JSON or YAML file with profile data.")
	return f
}

func (c *RegisterCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <email>")
		return 1
	}

	var data map[string]any
	if c.flagData != "" || c.flagFile != "" {
		var err error
		if data, err = c.ReadData(c.flagData, c.flagFile); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
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

	if err := sess.Client.Register(ctx, f.Arg(0), pw, data); err != nil {
		c.UI.Error(fmt.Sprintf("registration failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Registered %s", f.Arg(0)))
	return 0
}

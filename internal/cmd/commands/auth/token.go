package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type TokenCommand struct {
	*base.Command

	flags      base.ClientFlags
	flagClaims bool
}

func (c *TokenCommand) Synopsis() string {
	return "Print the saved access token"
}

func (c *TokenCommand) Help() string {
	return `Usage: cocobase auth token [options]

  Print the saved access token, or its decoded claims with -claims. Claims
  are decoded without verifying the signature.` + c.Flags().Help()
}

func (c *TokenCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("token", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.BoolVar(&c.flagClaims, "claims", false, "Print the token claims instead of the token.")
	return f
}

func (c *TokenCommand) Run(args []string) int {
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

	if !sess.Client.IsAuthenticated() {
		c.UI.Error("not logged in")
		return 1
	}

	if !c.flagClaims {
		c.UI.Output(sess.Client.Token())
		return 0
	}

	claims, err := sess.Client.TokenClaims()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.Output(c.flags.Format, claims); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

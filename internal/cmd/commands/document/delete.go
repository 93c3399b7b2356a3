package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type DeleteCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a document"
}

func (c *DeleteCommand) Help() string {
	return `Usage: cocobase document delete [options] <collection> <id>

  Delete one document.` + c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("delete", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 2 {
		c.UI.Error("expected <collection> <id>")
		return 1
	}

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	result, err := sess.Client.DeleteDocument(ctx, f.Arg(0), f.Arg(1))
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(c.flags.Format, result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

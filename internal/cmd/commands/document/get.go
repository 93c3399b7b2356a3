package document

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/pkg/cocobase"
)

type GetCommand struct {
	*base.Command

	flags base.ClientFlags
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a document"
}

func (c *GetCommand) Help() string {
	return `Usage: cocobase document get [options] <collection> <id>

  Fetch one document and print it.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	return f
}

func (c *GetCommand) Run(args []string) int {
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

	doc, err := sess.Client.GetDocument(ctx, f.Arg(0), f.Arg(1))
	if errors.Is(err, cocobase.ErrNotFound) {
		c.UI.Error(fmt.Sprintf("document %q not found in collection %q", f.Arg(1), f.Arg(0)))
		return 1
	}
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(c.flags.Format, doc); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type UpdateCommand struct {
	*base.Command

	flags    base.ClientFlags
	flagData string
	flagFile string
}

func (c *UpdateCommand) Synopsis() string {
	return "Update fields of a document"
}

func (c *UpdateCommand) Help() string {
	return `Usage: cocobase document update [options] <collection> <id>

  Send a partial update to a document. Only the given fields are sent; the
  server decides how they are merged.` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("update", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagData, "data", "", "Fields to update as a JSON object.")
	f.StringVar(&c.flagFile, "file", "", "Path to a JSON or YAML file with the fields to update.")
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 2 {
		c.UI.Error("expected <collection> <id>")
		return 1
	}

	partial, err := c.ReadData(c.flagData, c.flagFile)
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

	doc, err := sess.Client.UpdateDocument(ctx, f.Arg(0), f.Arg(1), partial)
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

package document

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type CreateCommand struct {
	*base.Command

	flags    base.ClientFlags
	flagData string
	flagFile string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a document"
}

func (c *CreateCommand) Help() string {
	return `Usage: cocobase document create [options] <collection>

  Create a document from JSON given with -data or a JSON or YAML file given
  with -file, and print the stored document.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("create", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagData, "data", "", "Document data as a JSON object.")
	f.StringVar(&c.flagFile, "file", "", "Path to a JSON or YAML file with the document data.")
	return f
}

func (c *CreateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <collection>")
		return 1
	}

	data, err := c.ReadData(c.flagData, c.flagFile)
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

	doc, err := sess.Client.CreateDocument(ctx, f.Arg(0), data)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.Log.Debug("created document", "collection", f.Arg(0), "id", doc.ID)
	if err := c.Output(c.flags.Format, doc); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

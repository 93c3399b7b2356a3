package upload

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type Command struct {
	*base.Command

	flags    base.ClientFlags
	flagName string
}

func (c *Command) Synopsis() string {
	return "Upload a file"
}

func (c *Command) Help() string {
	return `Usage: cocobase upload [options] <path>

  Upload a file and print the backend's response. Only the API key is sent
  with uploads.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upload", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagName, "name", "", "File name sent to the backend. Defaults to the base name of <path>.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <path>")
		return 1
	}
	path := f.Arg(0)

	name := c.flagName
	if name == "" {
		name = filepath.Base(path)
	}

	file, err := c.FS().Open(path)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error opening file: %v", err))
		return 1
	}
	defer file.Close()

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	result, err := sess.Client.UploadFile(ctx, name, file)
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

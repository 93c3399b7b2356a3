package document

import (
	"github.com/mitchellh/cli"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Read and write documents"
}

func (c *Command) Help() string {
	return `Usage: cocobase document <subcommand> [options] [args]

  This command groups subcommands for working with documents in a
  collection.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

package version

import (
	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: cocobase version

  Print the version of this binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.FullVersion())
	return 0
}

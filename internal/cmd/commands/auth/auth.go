package auth

import (
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage the saved login session"
}

func (c *Command) Help() string {
	return `Usage: cocobase auth <subcommand> [options] [args]

  This command groups subcommands for logging in and managing the current
  user. The session is saved in the configured storage backend and reused
  by later commands.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// password returns flagValue or prompts for it.
func password(c *base.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	pw, err := c.UI.AskSecret("Password:")
	if err != nil {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	if pw == "" {
		return "", fmt.Errorf("password is required")
	}
	return pw, nil
}

package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
)

// Command holds what every subcommand needs.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used to read input files. Default: the OS filesystem
	Fs afero.Fs
}

// NewCommand returns a Command writing to ui and logging to log.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// FS returns the filesystem for input files.
func (c *Command) FS() afero.Fs {
	if c.Fs == nil {
		return afero.NewOsFs()
	}
	return c.Fs
}

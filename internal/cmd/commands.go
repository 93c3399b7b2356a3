package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/internal/cmd/commands/auth"
	"github.com/cocobase/cocobase-go/internal/cmd/commands/document"
	"github.com/cocobase/cocobase-go/internal/cmd/commands/upload"
	"github.com/cocobase/cocobase-go/internal/cmd/commands/version"
	"github.com/cocobase/cocobase-go/internal/cmd/commands/watch"
)

// Commands returns the command table for the CLI.
func Commands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := base.NewCommand(log, ui)

	return map[string]cli.CommandFactory{
		"auth": func() (cli.Command, error) {
			return &auth.Command{Command: b}, nil
		},
		"auth login": func() (cli.Command, error) {
			return &auth.LoginCommand{Command: b}, nil
		},
		"auth logout": func() (cli.Command, error) {
			return &auth.LogoutCommand{Command: b}, nil
		},
		"auth register": func() (cli.Command, error) {
			return &auth.RegisterCommand{Command: b}, nil
		},
		"auth token": func() (cli.Command, error) {
			return &auth.TokenCommand{Command: b}, nil
		},
		"auth update": func() (cli.Command, error) {
			return &auth.UpdateCommand{Command: b}, nil
		},
		"auth whoami": func() (cli.Command, error) {
			return &auth.WhoamiCommand{Command: b}, nil
		},
		"document": func() (cli.Command, error) {
			return &document.Command{Command: b}, nil
		},
		"document create": func() (cli.Command, error) {
			return &document.CreateCommand{Command: b}, nil
		},
		"document delete": func() (cli.Command, error) {
			return &document.DeleteCommand{Command: b}, nil
		},
		"document get": func() (cli.Command, error) {
			return &document.GetCommand{Command: b}, nil
		},
		"document list": func() (cli.Command, error) {
			return &document.ListCommand{Command: b}, nil
		},
		"document update": func() (cli.Command, error) {
			return &document.UpdateCommand{Command: b}, nil
		},
		"upload": func() (cli.Command, error) {
			return &upload.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
		"watch": func() (cli.Command, error) {
			return &watch.Command{Command: b}, nil
		},
	}
}

package auth

import (
	"context"
	"flag"
	"fmt"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/pkg/models"
)

type UpdateCommand struct {
	*base.Command

	flags        base.ClientFlags
	flagData     string
	flagFile     string
	flagEmail    string
	flagPassword string
}

func (c *UpdateCommand) Synopsis() string {
	return "Update the logged in user"
}

func (c *UpdateCommand) Help() string {
	return `Usage: cocobase auth update [options]

  Update the current user's profile data, email or password. Profile data
  is merged onto the existing data; keys that are not given are kept.` + c.Flags().Help()
}

func (c *UpdateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("update", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagData, "data", "", "Profile data to merge, as a JSON object.")
	f.StringVar(&c.flagFile, "file", "", "Path to a JSON or YAML file with profile data to merge.")
	f.StringVar(&c.flagEmail, "email", "", "New email address.")
	f.StringVar(&c.flagPassword, "password", "", "New password.")
	return f
}

func (c *UpdateCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var update models.UserUpdate
	if c.flagData != "" || c.flagFile != "" {
		data, err := c.ReadData(c.flagData, c.flagFile)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		update.Data = data
	}
	if c.flagEmail != "" {
		update.Email = &c.flagEmail
	}
	if c.flagPassword != "" {
		update.Password = &c.flagPassword
	}
	if update.Data == nil && update.Email == nil && update.Password == nil {
		c.UI.Error("nothing to update: set -data, -file, -email or -password")
		return 1
	}

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	user, err := sess.Client.UpdateUser(ctx, update)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(c.flags.Format, user); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

package watch

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/pkg/realtime"
)

type Command struct {
	*base.Command

	flags    base.ClientFlags
	flagName string
}

func (c *Command) Synopsis() string {
	return "Stream changes to a collection"
}

func (c *Command) Help() string {
	return `Usage: cocobase watch [options] <collection>

  Subscribe to realtime changes in a collection and print every event until
  interrupted. The connection is not re-established if it drops.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("watch", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.StringVar(&c.flagName, "name", "", "Connection name. Defaults to watch-<collection>.")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <collection>")
		return 1
	}
	collection := f.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	failed := make(chan error, 1)
	conn := sess.Client.WatchCollection(ctx, collection, func(e realtime.Event) {
		if err := c.Output(c.flags.Format, e); err != nil {
			c.Log.Warn("error printing event", "error", err)
		}
	}, realtime.Options{
		Name: c.flagName,
		OnOpen: func() {
			c.UI.Info(fmt.Sprintf("Watching %s (press Ctrl-C to stop)", collection))
		},
		OnError: func(err error) {
			failed <- err
		},
	})

	select {
	case <-ctx.Done():
		sess.Client.CloseConnection(conn.Name)
		<-conn.Done()
		return 0
	case err := <-failed:
		c.UI.Error(err.Error())
		return 1
	case <-conn.Done():
		select {
		case err := <-failed:
			c.UI.Error(err.Error())
			return 1
		default:
		}
		c.UI.Info("Connection closed by server")
		return 0
	}
}

package document

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/cocobase/cocobase-go/internal/cmd/base"
	"github.com/cocobase/cocobase-go/pkg/models"
)

// filterFlag collects repeated -filter key=value flags.
type filterFlag map[string]string

func (f filterFlag) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f filterFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("filter must be key=value, got %q", s)
	}
	f[k] = v
	return nil
}

type ListCommand struct {
	*base.Command

	flags       base.ClientFlags
	flagFilters filterFlag
	flagLimit   int
	flagOffset  int
}

func (c *ListCommand) Synopsis() string {
	return "List documents in a collection"
}

func (c *ListCommand) Help() string {
	return `Usage: cocobase document list [options] <collection>

  List documents matching the given filters.

  Example:

    cocobase document list -filter status=published -limit 10 posts` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	if c.flagFilters == nil {
		c.flagFilters = filterFlag{}
	}
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ContinueOnError))
	base.AddClientFlags(f, &c.flags)
	f.Var(c.flagFilters, "filter", "Filter as key=value. May be repeated.")
	f.IntVar(&c.flagLimit, "limit", models.DefaultLimit, "Maximum number of documents to return.")
	f.IntVar(&c.flagOffset, "offset", models.DefaultOffset, "Number of documents to skip.")
	return f
}

func (c *ListCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected <collection>")
		return 1
	}

	ctx := context.Background()
	sess, err := c.OpenSession(ctx, c.flags.Config)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	defer sess.Close()

	q := &models.Query{
		Filters: c.flagFilters,
		Limit:   &c.flagLimit,
		Offset:  &c.flagOffset,
	}
	docs, err := sess.Client.ListDocuments(ctx, f.Arg(0), q)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if err := c.Output(c.flags.Format, docs); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

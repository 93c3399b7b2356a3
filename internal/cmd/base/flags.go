package base

import (
	"bytes"
	"flag"
	"fmt"
	"strings"
)

// FlagSet wraps flag.FlagSet with help rendering.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are returned rather than printed.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(new(bytes.Buffer))
	return &FlagSet{FlagSet: f}
}

// Help renders the flags for inclusion in a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return strings.TrimRight(b.String(), "\n")
}

package version

import "fmt"

var (
	// Version is the semantic version, set at build time with -ldflags.
	Version = "0.1.0"

	// GitCommit is the commit the binary was built from.
	GitCommit string
)

// FullVersion returns the version with the commit, if known.
func FullVersion() string {
	if GitCommit == "" {
		return fmt.Sprintf("cocobase v%s", Version)
	}
	return fmt.Sprintf("cocobase v%s (%s)", Version, GitCommit)
}

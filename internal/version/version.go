// Package version carries build metadata, overridden at link time with
// -ldflags "-X github.com/zombar/readability-analyzer/internal/version.Version=...".
package version

import "fmt"

var (
	Version = "1.0.0"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata on one line
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

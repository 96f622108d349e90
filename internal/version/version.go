// Package version holds the build information stamped in at link time.
package version

import "fmt"

// Build information set by ldflags, e.g.
// -X github.com/arthur-debert/creatorly/internal/version.Version=v1.2.0
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the program name and version
func Short() string {
	return "creatorly " + Version
}

// Info returns the version report printed by the version command
func Info() string {
	return fmt.Sprintf("%s\n  commit: %s\n  built:  %s\n", Short(), Commit, Date)
}

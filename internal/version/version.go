package version

import "fmt"

var (
	// Version is the semantic version (for example v1.2.3). Set via -ldflags.
	Version = "dev"
	// Commit is the VCS revision. Set via -ldflags.
	Commit = "unknown"
	// BuildDate is the UTC build timestamp (RFC3339). Set via -ldflags.
	BuildDate = "unknown"
)

// String returns a concise version string.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Detailed returns extended build metadata.
func Detailed() string {
	return fmt.Sprintf("scour %s\ncommit: %s\nbuilt: %s", Version, Commit, BuildDate)
}

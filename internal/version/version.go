package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/deskset/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/deskset/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/deskset/internal/version.Date={{.Date}}
)

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("deskset %s (commit %s, built %s)", Version, Commit, Date)
}

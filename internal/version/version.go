// Package version exposes build metadata stamped in with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/siteroutes/internal/version.Version=v0.3.0"
package version

import "fmt"

// Version contains the application version information.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("siteroutes %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}

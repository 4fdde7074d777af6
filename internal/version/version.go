// Package version holds the CLI version, set at build time via ldflags.
package version

import "fmt"

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/buildmon/cli/internal/version.Version=1.2.3"
var Version = "dev"

// Format returns a human readable version string
func Format(version string) string {
	return fmt.Sprintf("bm version %s", version)
}

// Package version reports which build of lifeassist is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X .../internal/version.Commit=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String returns e.g. "lifeassist dev (commit: 1a2b3c4, built: unknown)".
// Without an ldflags commit it falls back to the VCS revision the Go
// toolchain embeds in the binary.
func String() string {
	return fmt.Sprintf("lifeassist %s (commit: %s, built: %s)", Version, commit(), BuildTime)
}

func commit() string {
	rev := Commit
	if rev == "" {
		rev = "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					rev = s.Value
				}
			}
		}
	}
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

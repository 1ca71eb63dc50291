// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Provide the release number and build revision for output and the User-Agent header.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is the release number. Overridden at build time with
// -ldflags "-X github.com/antipatico/portid/internal/version.Version=...".
var Version = "0.2.0"

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release number, followed by the VCS revision when
// build info carries one. A modified tree is marked with "dirty".
func GetVersion() string {
	revision := Revision()
	if revision == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, revision)
}

// Revision returns the short VCS revision, or "" when unavailable.
func Revision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}

	var revision string
	var modified bool

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			// Shorten revision to 7 chars if possible
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if revision == "" {
		return ""
	}
	if modified {
		return revision + ", dirty"
	}
	return revision
}

// UserAgent returns the User-Agent header sent with snapshot downloads.
func UserAgent() string {
	return "portid/" + Version
}

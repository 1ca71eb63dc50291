// Where: internal/version/version_test.go
// What: Tests for version string assembly.
// Why: Keep the User-Agent and version output stable across builds.
package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
}

func TestGetVersionWithoutBuildInfo(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := GetVersion(); got != Version {
		t.Fatalf("GetVersion() = %q, want %q", got, Version)
	}
}

func TestGetVersionShortensRevision(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}}, true)

	want := Version + " (0123456, dirty)"
	if got := GetVersion(); got != want {
		t.Fatalf("GetVersion() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "portid/"+Version {
		t.Fatalf("UserAgent() = %q", got)
	}
}

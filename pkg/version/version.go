// Package version provides build and version information for thesisdash.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release version, injected at build time with
//
//	-ldflags "-X github.com/Aman-CERP/thesisdash/pkg/version.Version=v0.3.0"
//
// Binaries built with `go install module@version` fall back to the module
// version recorded in the build info.
var Version = "dev"

// Build information set via ldflags.
var (
	Commit = "unknown"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
	// GoVersion is the toolchain that built the binary.
	GoVersion = runtime.Version()
)

func init() {
	if Version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		Version = moduleVersion(info, Version)
	}
}

// moduleVersion returns the main module version from info, or fallback for
// local builds.
func moduleVersion(info *debug.BuildInfo, fallback string) string {
	if info == nil || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return fallback
	}
	return info.Main.Version
}

// BuildInfo is structured version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// String returns a formatted version string with all build info.
func String() string {
	return fmt.Sprintf("thesisdash %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, GoVersion)
}

// Short returns just the version string.
func Short() string {
	return Version
}

// GetInfo returns structured version information.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Package buildinfo carries release metadata stamped into the binary at
// build time. Development builds leave everything empty and the version
// command falls back to debug.ReadBuildInfo.
package buildinfo

// Set via -ldflags "-X github.com/jepemo/mystuff/internal/buildinfo.Version=..."
// and friends by the release pipeline.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

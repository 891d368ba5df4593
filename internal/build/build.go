// Package build holds the version information stamped into brisk at link time,
// e.g. -ldflags "-X go.trai.ch/brisk/internal/build.Version=v0.4.0".
package build

var (
	// Version is the released version, "dev" for local builds.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

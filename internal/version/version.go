// Package version exposes the build-time version string.
package version

// Version is set via ldflags at build time:
// -ldflags "-X github.com/hidio/usagegen/internal/version.Version=x.y.z"
var Version = ""

// Get returns the version string, or a development placeholder when the
// build did not set one.
func Get() string {
	if Version == "" {
		return "0.0.1-dev"
	}
	return Version
}

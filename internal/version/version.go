// Package version exposes build metadata, overridden at link time with
// -ldflags "-X ...".
package version

var (
	// Version is the converter release version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

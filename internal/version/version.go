// Package version carries build metadata injected via -ldflags.
package version

import "runtime"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// GoVersion reports the Go runtime the binary was built with.
func GoVersion() string {
	return runtime.Version()
}

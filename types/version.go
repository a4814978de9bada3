package types

import "runtime"

// Version information for the docclean library.
const (
	Version = "0.1.0"
	Name    = "docclean"
)

// BuildInfo contains version and build information for the docclean library.
// It includes the version number, name, and Go version used to build the library.
type BuildInfo struct {
	Version   string
	Name      string
	GoVersion string
}

// GetBuildInfo returns the current version information for the docclean library.
// This is useful for displaying version information in logs or help output.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}

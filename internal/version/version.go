package version

// Version information for codenav
const (
	// Version is the current semantic version
	Version = "0.2.0"

	// BuildDate is set during build time (use -ldflags)
	BuildDate = "development"

	// GitCommit is set during build time (use -ldflags)
	GitCommit = "unknown"
)

// IndexFormatVersion is the version tag of the persisted index snapshot.
// Version 2 dropped persisted references; they are resolved on demand by
// the hybrid search. Snapshots with any other version are discarded and
// rebuilt rather than migrated.
const IndexFormatVersion = 2

// Info returns version information as a string
func Info() string {
	return Version
}

// FullInfo returns detailed version information
func FullInfo() string {
	return "codenav " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ")"
}

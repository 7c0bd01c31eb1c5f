// Package buildinfo carries the version stamped in at link time.
package buildinfo

import "log/slog"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for window titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Attrs returns the build identifiers as slog attributes, for logger.With.
func Attrs() []any {
	return []any{
		slog.Group("build",
			slog.String("version", Version),
			slog.String("commit", Commit),
			slog.String("date", Date),
		),
	}
}

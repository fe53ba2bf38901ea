// Package sfoglia provides view-state persistence for UI containers that
// swap between mutually-exclusive screens (back stacks, tab sets) or show
// several modal windows at once.
//
// The backstack subpackage preserves and restores per-screen state across
// navigation: a Cache of Frames, one per logical screen, each carrying the
// screen's view-hierarchy state and its saved-state-registry payload. The
// modal subpackage keeps N simultaneously-visible windows in sync with an
// ordered rendering list, each window snapshotting its own state. The store
// subpackage persists the resulting records across process death.
//
// What should be shown is an opaque "rendering" value; mapping renderings to
// concrete views belongs to the host's dispatch layer. This package only
// needs a stable identity for them, provided by Key and Compatible.
package sfoglia

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/sfoglia/pkg/sfoglia/internal"
)

// DebugEnvVar enables verbose internal diagnostics when set.
const DebugEnvVar = "SFOGLIA_DEBUG"

// Options configures sfoglia initialization.
type Options struct {
	LogPath  string // Full path for log file including filename (creates parent directories)
	LogLevel string // Minimum level for the application logger ("debug", "info", "warn", "error")
}

// Init configures logging. Optional; without it sfoglia logs to stdout with
// internal diagnostics suppressed. Call before any cache or container is
// created so the log destination is settled first.
func Init(options Options) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	if os.Getenv(DebugEnvVar) != "" {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.LogLevel != "" {
		internal.SetRawLogLevel(options.LogLevel)
	}
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// CloseLogger releases the log file, if one was opened.
func CloseLogger() {
	internal.CloseLogger()
}

// Package log provides a concurrency-safe structured logging interface
// based on [log/slog].
//
// A [Logger] is created with [Make] and configured through functional
// options applied at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//
// The zero value of [Logger] is valid and discards every message, so
// library code can accept a Logger without nil checks.
//
// In addition to the standard slog levels, the package defines
// [LevelTrace] below Debug for high-volume diagnostics such as parser
// state transitions.
//
// Every level has a context-aware and a context-unaware variant. The
// context-unaware functions obtain their context from
// [DefaultContextProvider].
//
// The package also maintains a default logger writing to standard
// output, reconfigured with [Config] and used by the package-level
// logging functions.
package log

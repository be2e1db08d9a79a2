// Package cli contains the command line interface for cliq.
//
// # Usage
//
// The default command evaluates a program from a file or stdin:
//
//	cliq eval graph.cliq
//	echo '{A,[B,C]}' | cliq
//
// Subcommands format programs (fmt), export graph projections (export),
// open an interactive session (repl), and write a default configuration
// file (init).
//
// # Binding policy
//
// Commands that resolve programs accept --shadowing and --recursion
// flags controlling whether names may be rebound and whether bindings
// may reference themselves. Recursion is reserved: the flag is accepted
// but recursive bindings are never expanded.
//
// # Prelude
//
// If a prelude.cliq file exists in the configuration directory, its
// assignments seed the environment of eval, export, and repl before the
// program's own bindings are resolved.
//
// # Logging options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized pretty printing
//
// # Profiling options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof ./...
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu,
//     goroutine, heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli

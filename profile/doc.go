// Package profile provides optional runtime profiling for the cliq
// application.
//
// It integrates [github.com/pkg/profile] behind conditional compilation.
// Profiling must be enabled at build time with the "pprof" build tag; without
// the tag, every operation in this package is a no-op with zero runtime
// overhead.
//
// # Available Profiling Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to enumerate the supported modes programmatically.
//
// # Usage
//
// Build a [Config] with the functional options and start it:
//
//	var cfg profile.Config
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof). Analyze them with:
//
//	go tool pprof ./cliq /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The cliq command exposes these settings through the -pprof-mode and
// -pprof-dir flags when built with the pprof tag. The default output
// directory is the pprof subdirectory of the user cache directory.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

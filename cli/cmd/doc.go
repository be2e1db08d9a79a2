// Package cmd implements the cliq subcommands: eval, fmt, export, repl,
// and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path
	// to the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the configuration file (without extension).
	ConfigIdentifier = "config"

	// PreludeIdentifier is the kong variable identifier containing the path
	// to the prelude file of bindings loaded before evaluation.
	PreludeIdentifier = "prelude"
)

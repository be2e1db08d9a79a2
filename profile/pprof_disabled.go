//go:build !pprof

package profile

import "iter"

// Modes returns an empty sequence when built without the pprof build tag.
func Modes() iter.Seq[string] {
	return func(func(string) bool) {}
}

// start is a no-op when built without the pprof build tag.
func start(_, _ string, _ bool) interface{ Stop() } {
	return ignore{}
}

package cmd

import (
	"context"

	"github.com/cliqlang/cliq/cli/cmd/repl"
	"github.com/cliqlang/cliq/log"
)

// Repl starts an interactive session. Unlike eval, rebinding names is
// allowed by default so a session can redefine its bindings freely.
type Repl struct {
	Shadowing bool `default:"true" help:"Allow rebinding a name that is already bound."             negatable:""`
	Recursion bool `               help:"Allow self-referential bindings (reserved, not expanded)." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	env, err := makeEnv(ctx, policyConfig{
		Shadowing: r.Shadowing,
		Recursion: r.Recursion,
	})
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, env, cacheDir, log.Default())
}

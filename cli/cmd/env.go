package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/cliqlang/cliq/lang"
	"github.com/cliqlang/cliq/log"
)

// policyConfig holds the binding policy flags shared by the commands
// that resolve programs.
type policyConfig struct {
	Shadowing bool `help:"Allow rebinding a name that is already bound."               negatable:""`
	Recursion bool `help:"Allow self-referential bindings (reserved, not expanded)."   negatable:""`
}

func (p policyConfig) config() *lang.Config {
	return lang.NewConfig(
		lang.WithShadowing(p.Shadowing),
		lang.WithRecursion(p.Recursion),
	)
}

// makeEnv builds a fresh environment under the given policy and seeds it
// with the prelude bindings, if a prelude file exists.
func makeEnv(ctx context.Context, policy policyConfig) (*lang.Env, error) {
	env := lang.NewEnv(policy.config())

	path := preludePathFrom(ctx)
	if path == "" {
		return env, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return env, nil
		}

		return nil, ErrLoadPrelude.
			With(slog.String("path", path)).
			Wrap(err)
	}

	stmts, err := lang.ParseStmts(ctx, string(data))
	if err != nil {
		return nil, ErrLoadPrelude.
			With(slog.String("path", path)).
			Wrap(err)
	}

	if _, err := lang.ResolveStmts(stmts, env); err != nil {
		return nil, ErrLoadPrelude.
			With(slog.String("path", path)).
			Wrap(err)
	}

	log.DebugContext(ctx, "prelude loaded",
		slog.String("path", path),
		slog.Int("bindings", env.Len()),
	)

	return env, nil
}

// preludePathFrom returns the prelude file path from the kong vars, or
// empty if unavailable.
func preludePathFrom(ctx context.Context) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[PreludeIdentifier]
}

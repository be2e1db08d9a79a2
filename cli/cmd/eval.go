package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cliqlang/cliq/lang"
)

// Eval parses a program, resolves its bindings, and prints the normal
// form of its value.
type Eval struct {
	policyConfig `embed:""`

	Program bool `help:"Print the whole resolved program instead of only its value." short:"P"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	r, closer, err := openSource(ctx, e.Source)
	if err != nil {
		return err
	}

	if closer != nil {
		defer closer()
	}

	prog, err := lang.ParseReader(ctx, r)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	env, err := makeEnv(ctx, e.policyConfig)
	if err != nil {
		return err
	}

	if e.Program {
		stmts, err := lang.ResolveStmts(prog.Stmts, env)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "eval"))
		}

		value, err := prog.Expr.Resolve(env)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "eval"))
		}

		resolved := &lang.Program{Stmts: stmts, Expr: value}

		return resolved.Format(ctx, os.Stdout)
	}

	value, err := prog.Resolve(env)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	_, err = fmt.Println(value.Normalize().String())

	return err
}

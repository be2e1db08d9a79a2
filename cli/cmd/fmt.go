package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/cliqlang/cliq/lang"
)

// Fmt reads a program, normalizes it, and prints it in the chosen format.
// Bindings are not resolved; use eval for that.
type Fmt struct {
	Native FmtNative `cmd:"" default:"withargs" help:"Format as canonical cliq syntax (default)."`
	JSON   FmtJSON   `cmd:""                    help:"Format as JSON."`
	YAML   FmtYAML   `cmd:""                    help:"Format as YAML."`
}

// FmtNative formats input as canonical cliq syntax.
type FmtNative struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the fmt command.
func (f *FmtNative) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	return prog.Format(ctx, os.Stdout)
}

// FmtJSON formats input as JSON.
type FmtJSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the fmt json command.
func (f *FmtJSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, f.Source, "json")
	if err != nil {
		return err
	}

	return prog.FormatJSON(ctx, os.Stdout, f.Indent)
}

// FmtYAML formats input as YAML.
type FmtYAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the fmt yaml command.
func (f *FmtYAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prog, err := parseSource(ctx, f.Source, "yaml")
	if err != nil {
		return err
	}

	return prog.FormatYAML(ctx, os.Stdout, f.Indent)
}

// parseSource opens and parses the program named by source for a fmt
// subcommand.
func parseSource(ctx context.Context, source, format string) (*lang.Program, error) {
	r, closer, err := openSource(ctx, source)
	if err != nil {
		return nil, err
	}

	if closer != nil {
		defer closer()
	}

	prog, err := lang.ParseReader(ctx, r)
	if err != nil {
		return nil, lang.WrapError(err).
			With(slog.String("format", format))
	}

	return prog, nil
}

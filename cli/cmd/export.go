package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/cliqlang/cliq/lang"
)

// Export resolves a program and emits the graph projection of its value.
type Export struct {
	policyConfig `embed:""`

	Format string `default:"json" enum:"json,yaml,dot" help:"Output format."             short:"F"`
	Indent int    `default:"2"                         help:"Indent width for json/yaml" short:"i"`
	Name   string `default:"cliq"                      help:"Graph name for dot output."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source" optional:""`
}

// Run executes the export command.
func (e *Export) Run(ctx context.Context) (err error) {
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
			With(slog.String("command", "export"))
	}

	env, err := makeEnv(ctx, e.policyConfig)
	if err != nil {
		return err
	}

	value, err := prog.Resolve(env)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "export"))
	}

	graph := value.Project()

	switch e.Format {
	case "yaml":
		err = graph.FormatYAML(ctx, os.Stdout, e.Indent)
	case "dot":
		err = graph.FormatDOT(ctx, os.Stdout, e.Name)
	default:
		err = graph.FormatJSON(ctx, os.Stdout, e.Indent)
	}

	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", e.Format)).
			Wrap(err)
	}

	return nil
}

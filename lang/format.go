package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in canonical cliq syntax to the writer: each
// assignment on its own line, normalized, followed by the normalized
// trailing expression.
func (p *Program) Format(_ context.Context, w io.Writer) error {
	for _, s := range p.Stmts {
		norm := &Stmt{Name: s.Name, Expr: s.Expr.Normalize()}

		if _, err := fmt.Fprintln(w, norm.String()); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, p.Expr.Normalize().String())

	return err
}

// stmtDoc and programDoc are the serialized shapes of a formatted
// program. Expressions are rendered as canonical normalized text rather
// than nested trees so the output round-trips through the parser.
type (
	stmtDoc struct {
		Name Node   `json:"name" yaml:"name"`
		Expr string `json:"expr" yaml:"expr"`
	}

	programDoc struct {
		Stmts []stmtDoc `json:"stmts,omitempty" yaml:"stmts,omitempty"`
		Expr  string    `json:"expr"            yaml:"expr"`
	}
)

func (p *Program) doc() programDoc {
	doc := programDoc{Expr: p.Expr.Normalize().String()}

	for _, s := range p.Stmts {
		doc.Stmts = append(doc.Stmts, stmtDoc{
			Name: s.Name,
			Expr: s.Expr.Normalize().String(),
		})
	}

	return doc
}

// FormatJSON writes the normalized program as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	doc := p.doc()

	if indent > 0 {
		data, err = json.MarshalIndent(doc, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the normalized program as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, p.doc(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatJSON writes the graph projection as JSON to the writer.
func (g *Graph) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(g, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(g)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the graph projection as YAML to the writer.
func (g *Graph) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, g, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// FormatDOT writes the graph projection in Graphviz DOT syntax to the
// writer. Adjacencies are emitted once per unordered pair as undirected
// edges.
func (g *Graph) FormatDOT(_ context.Context, w io.Writer, name string) error {
	if name == "" {
		name = "cliq"
	}

	var b strings.Builder

	b.WriteString("graph " + name + " {\n")

	for _, n := range g.Nodes {
		b.WriteString("  " + string(n) + ";\n")
	}

	for _, e := range g.Edges {
		// The edge set carries both directions; emit each pair once.
		if e.From < e.To {
			b.WriteString("  " + string(e.From) + " -- " + string(e.To) + ";\n")
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

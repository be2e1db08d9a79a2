package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func mustParseProgram(t *testing.T, input string) *Program {
	t.Helper()

	prog, err := ParseProgram(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error for %q: %v", input, err)
	}

	return prog
}

func TestProgram_Format(t *testing.T) {
	prog := mustParseProgram(t, "G1 = {A, [B, C]}\n[[{{D}}]]")

	var buf bytes.Buffer
	if err := prog.Format(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "G1 = [{A, B}, {A, C}]\nD\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestProgram_FormatRoundTrip(t *testing.T) {
	prog := mustParseProgram(t, "G = {A, [B, C]}\n{G, D}")

	var buf bytes.Buffer
	if err := prog.Format(context.Background(), &buf); err != nil {
		t.Fatalf("format error: %v", err)
	}

	again := mustParseProgram(t, buf.String())

	var buf2 bytes.Buffer
	if err := again.Format(context.Background(), &buf2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if buf.String() != buf2.String() {
		t.Errorf("format not stable: %q != %q", buf.String(), buf2.String())
	}
}

func TestProgram_FormatJSON(t *testing.T) {
	prog := mustParseProgram(t, "G = {A, [B, C]}\nG")

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc struct {
		Stmts []struct {
			Name string `json:"name"`
			Expr string `json:"expr"`
		} `json:"stmts"`
		Expr string `json:"expr"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if len(doc.Stmts) != 1 || doc.Stmts[0].Name != "G" {
		t.Errorf("unexpected stmts: %+v", doc.Stmts)
	}

	if doc.Stmts[0].Expr != "[{A, B}, {A, C}]" {
		t.Errorf("unexpected stmt expr: %s", doc.Stmts[0].Expr)
	}

	if doc.Expr != "G" {
		t.Errorf("unexpected trailing expr: %s", doc.Expr)
	}
}

func TestProgram_FormatYAML(t *testing.T) {
	prog := mustParseProgram(t, "G = {A, B}\nG")

	var buf bytes.Buffer
	if err := prog.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"stmts:", "name: G", `expr: "{A, B}"`, "expr: G"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestGraph_FormatJSON(t *testing.T) {
	graph := mustParseExpr(t, "[A, {B, C}]").Project()

	var buf bytes.Buffer
	if err := graph.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	var doc struct {
		Nodes []string `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if len(doc.Nodes) != 3 || doc.Nodes[0] != "A" {
		t.Errorf("unexpected nodes: %v", doc.Nodes)
	}

	if len(doc.Edges) != 2 || doc.Edges[0].From != "B" || doc.Edges[0].To != "C" {
		t.Errorf("unexpected edges: %v", doc.Edges)
	}
}

func TestGraph_FormatJSON_Compact(t *testing.T) {
	graph := mustParseExpr(t, "A").Project()

	var buf bytes.Buffer
	if err := graph.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := `{"nodes":["A"],"edges":[]}` + "\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestGraph_FormatYAML(t *testing.T) {
	graph := mustParseExpr(t, "{A, B}").Project()

	var buf bytes.Buffer
	if err := graph.FormatYAML(context.Background(), &buf, 2); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()

	for _, want := range []string{"nodes:", "edges:", "from: A", "to: B"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestGraph_FormatDOT(t *testing.T) {
	graph := mustParseExpr(t, "[A, {B, C}]").Project()

	var buf bytes.Buffer
	if err := graph.FormatDOT(context.Background(), &buf, "test"); err != nil {
		t.Fatalf("format error: %v", err)
	}

	want := "graph test {\n" +
		"  A;\n" +
		"  B;\n" +
		"  C;\n" +
		"  B -- C;\n" +
		"}\n"

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestGraph_FormatDOT_DefaultName(t *testing.T) {
	graph := mustParseExpr(t, "A").Project()

	var buf bytes.Buffer
	if err := graph.FormatDOT(context.Background(), &buf, ""); err != nil {
		t.Fatalf("format error: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "graph cliq {") {
		t.Errorf("expected default graph name, got:\n%s", buf.String())
	}
}

package lang

import (
	"context"
	"reflect"
	"testing"
)

func mustParseExpr(t *testing.T, input string) *Expr {
	t.Helper()

	expr, err := ParseExpr(context.Background(), input)
	if err != nil {
		t.Fatalf("parse error for %q: %v", input, err)
	}

	return expr
}

func TestNormalize_Node(t *testing.T) {
	got := mustParseExpr(t, "A").Normalize()

	if got.String() != "A" {
		t.Errorf("expected A, got %s", got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty disconnected", input: "[]", want: "[]"},
		{name: "empty connected", input: "{}", want: "[]"},
		{name: "empty member annihilates clique", input: "{A, []}", want: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Normalize()

			if got.String() != tt.want {
				t.Errorf("normalize(%s): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

func TestNormalize_Collapse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "singleton connected", input: "{A}", want: "A"},
		{name: "doubly nested connected", input: "{{A}}", want: "A"},
		{name: "singleton disconnected", input: "[A]", want: "A"},
		{name: "doubly nested disconnected", input: "[[A]]", want: "A"},
		{name: "mixed nesting", input: "{[A]}", want: "A"},
		{name: "deep mixed nesting", input: "[[{{D}}]]", want: "D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Normalize()

			if got.String() != tt.want {
				t.Errorf("normalize(%s): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

func TestNormalize_Flatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "nested singleton clique survives as component",
			input: "[A, [{B, C}], D]",
			want:  "[A, {B, C}, D]",
		},
		{
			name:  "nested disconnected splices into parent",
			input: "[A, [B, C], D]",
			want:  "[A, B, C, D]",
		},
		{
			name:  "clique component unchanged",
			input: "[A, {B, C}, D]",
			want:  "[A, {B, C}, D]",
		},
		{
			name:  "nested cliques flatten",
			input: "{{A, B}, C}",
			want:  "{A, B, C}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Normalize()

			if got.String() != tt.want {
				t.Errorf("normalize(%s): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

// Distribution results are rendered in the documented deterministic order:
// members left to right, accumulated combinations in the outer loop, the
// current member's branches in the inner loop.
func TestNormalize_Distribute(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "disconnected singleton inside clique",
			input: "{A, [B]}",
			want:  "{A, B}",
		},
		{
			name:  "clique singleton inside disconnected",
			input: "[A, {B}]",
			want:  "[A, B]",
		},
		{
			name:  "leaf by pair",
			input: "{A, [B, C]}",
			want:  "[{A, B}, {A, C}]",
		},
		{
			name:  "clique by pair",
			input: "{{A, B}, [C, D]}",
			want:  "[{A, B, C}, {A, B, D}]",
		},
		{
			name:  "pair by pair",
			input: "{[A, B], [C, D]}",
			want:  "[{A, C}, {A, D}, {B, C}, {B, D}]",
		},
		{
			name:  "nested distribution",
			input: "{A, {B, [C, D]}}",
			want:  "[{A, B, C}, {A, B, D}]",
		},
		{
			name:  "leaf pair leaf",
			input: "{A, [B, C], D}",
			want:  "[{A, B, D}, {A, C, D}]",
		},
		{
			name:  "clique branch inside disconnected member",
			input: "{A, [{B, C}, D], E}",
			want:  "[{A, B, C, E}, {A, D, E}]",
		},
		{
			name:  "two disconnected members",
			input: "{A, [{B, C}, D], E, [F, G]}",
			want:  "[{A, B, C, E, F}, {A, B, C, E, G}, {A, D, E, F}, {A, D, E, G}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Normalize()

			if got.String() != tt.want {
				t.Errorf("normalize(%s): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

func TestNormalize_Subsumption(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "duplicate nodes in clique collapse",
			input: "{A, A}",
			want:  "A",
		},
		{
			name:  "duplicate components keep earliest",
			input: "[A, A]",
			want:  "A",
		},
		{
			name:  "equal node sets keep earliest",
			input: "[{A, B}, {B, A}]",
			want:  "{A, B}",
		},
		{
			name:  "subset component dropped",
			input: "[{A, B}, A]",
			want:  "{A, B}",
		},
		{
			name:  "connected context merges everything",
			input: "{{A, B}, {A, B, C}, A, {C, D}, {C, D, E}}",
			want:  "{A, B, C, D, E}",
		},
		{
			name:  "disconnected context drops strict subsets",
			input: "[{A, B}, {A, B, C}, A, {C, D}, {C, D, E}]",
			want:  "[{A, B, C}, {C, D, E}]",
		},
		{
			name:  "distribution output deduplicates",
			input: "{[A, B], [A, B]}",
			want:  "{A, B}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Normalize()

			if got.String() != tt.want {
				t.Errorf("normalize(%s): expected %s, got %s", tt.input, tt.want, got)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"A",
		"[]",
		"{}",
		"{A, B, C}",
		"[A, {B, C}, D]",
		"{A, [B, C], D}",
		"{[A, B], [C, D]}",
		"{A, [{B, C}, D], E, [F, G]}",
		"[{A, B}, {A, B, C}, A, {C, D}, {C, D, E}]",
		"{{{A}, [B, {C, D}]}, E}",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := mustParseExpr(t, input).Normalize()
			twice := once.Normalize()

			if !once.Equal(twice) {
				t.Errorf("normalize not idempotent for %s: %s != %s",
					input, once, twice)
			}
		})
	}
}

func TestNormalize_GraphInvariant(t *testing.T) {
	inputs := []string{
		"A",
		"{A, B, C}",
		"[A, {B, C}, D]",
		"{A, [B, C], D}",
		"{[A, B], [C, D]}",
		"{A, [{B, C}, D], E, [F, G]}",
		"[{A, B}, {A, B, C}, A, {C, D}, {C, D, E}]",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			expr := mustParseExpr(t, input)
			norm := expr.Normalize()

			if !reflect.DeepEqual(expr.Nodes(), norm.Nodes()) {
				t.Errorf("nodes changed: %v != %v", expr.Nodes(), norm.Nodes())
			}

			if !reflect.DeepEqual(expr.Edges(), norm.Edges()) {
				t.Errorf("edges changed: %v != %v", expr.Edges(), norm.Edges())
			}
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	expr := mustParseExpr(t, "{A, [B, C], D}")
	before := expr.String()

	_ = expr.Normalize()

	if expr.String() != before {
		t.Errorf("input mutated: %s != %s", expr, before)
	}
}

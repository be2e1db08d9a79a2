package lang

import (
	"reflect"
	"testing"
)

func TestNodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{name: "leaf", input: "A", want: []Node{"A"}},
		{name: "empty group", input: "[]", want: []Node{}},
		{name: "sorted output", input: "{C, A, B}", want: []Node{"A", "B", "C"}},
		{name: "deduplicated", input: "[A, {A, B}]", want: []Node{"A", "B"}},
		{name: "nested", input: "{A, [B, {C, D}]}", want: []Node{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Nodes()

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("nodes(%s): expected %v, got %v", tt.input, tt.want, got)
			}
		})
	}
}

func TestEdges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Edge
	}{
		{
			name:  "leaf has no edges",
			input: "A",
			want:  []Edge{},
		},
		{
			name:  "pair clique",
			input: "{A, B}",
			want: []Edge{
				{From: "A", To: "B"},
				{From: "B", To: "A"},
			},
		},
		{
			name:  "triangle",
			input: "{A, B, C}",
			want: []Edge{
				{From: "A", To: "B"},
				{From: "A", To: "C"},
				{From: "B", To: "A"},
				{From: "B", To: "C"},
				{From: "C", To: "A"},
				{From: "C", To: "B"},
			},
		},
		{
			name:  "no cross component edges",
			input: "[A, {B, C}]",
			want: []Edge{
				{From: "B", To: "C"},
				{From: "C", To: "B"},
			},
		},
		{
			name:  "distribution induces edges",
			input: "{A, [B, C]}",
			want: []Edge{
				{From: "A", To: "B"},
				{From: "A", To: "C"},
				{From: "B", To: "A"},
				{From: "C", To: "A"},
			},
		},
		{
			name:  "duplicate nodes contribute nothing",
			input: "{A, A}",
			want:  []Edge{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustParseExpr(t, tt.input).Edges()

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("edges(%s): expected %v, got %v", tt.input, tt.want, got)
			}
		})
	}
}

func TestEdges_Symmetric(t *testing.T) {
	edges := mustParseExpr(t, "{A, [{B, C}, D], E}").Edges()

	set := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		set[e] = struct{}{}
	}

	for _, e := range edges {
		if _, ok := set[Edge{From: e.To, To: e.From}]; !ok {
			t.Errorf("missing reverse of %v", e)
		}
	}
}

func TestContainsNode(t *testing.T) {
	expr := mustParseExpr(t, "{A, [B, {C, D}]}")

	for _, name := range []Node{"A", "B", "C", "D"} {
		if !expr.ContainsNode(name) {
			t.Errorf("expected %s to be contained", name)
		}
	}

	if expr.ContainsNode("E") {
		t.Error("unexpected containment of E")
	}
}

func TestProject(t *testing.T) {
	graph := mustParseExpr(t, "[A, {B, C}]").Project()

	wantNodes := []Node{"A", "B", "C"}
	if !reflect.DeepEqual(graph.Nodes, wantNodes) {
		t.Errorf("expected nodes %v, got %v", wantNodes, graph.Nodes)
	}

	wantEdges := []Edge{
		{From: "B", To: "C"},
		{From: "C", To: "B"},
	}
	if !reflect.DeepEqual(graph.Edges, wantEdges) {
		t.Errorf("expected edges %v, got %v", wantEdges, graph.Edges)
	}
}

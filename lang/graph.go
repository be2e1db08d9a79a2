package lang

import (
	"slices"
)

// Edge is one directed half of an undirected adjacency. The edge relation
// is symmetric and always contains both (From, To) and (To, From).
type Edge struct {
	From Node `json:"from" yaml:"from"`
	To   Node `json:"to"   yaml:"to"`
}

// Nodes returns the set of all node names reachable in the expression,
// sorted lexicographically and deduplicated. It does not require normal
// form. For any expression without an empty grouping nested inside a
// connected group, the result is invariant under normalization; an
// empty member annihilates its enclosing group and takes the group's
// other nodes with it.
func (e *Expr) Nodes() []Node {
	set := nodeSet(e)

	nodes := make([]Node, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}

	slices.Sort(nodes)

	return nodes
}

// Edges returns the adjacency set implied by the expression, sorted and
// deduplicated. Each clique contributes every ordered pair of its distinct
// nodes; components of a disconnected group contribute no cross-component
// pairs. The expression is normalized internally, so Edges is well-defined
// for any input and invariant under normalization.
func (e *Expr) Edges() []Edge {
	set := make(map[Edge]struct{})
	collectEdges(e.Normalize(), set)

	edges := make([]Edge, 0, len(set))
	for edge := range set {
		edges = append(edges, edge)
	}

	slices.SortFunc(edges, compareEdges)

	return edges
}

// collectEdges walks a normal-form expression accumulating adjacencies.
func collectEdges(e *Expr, set map[Edge]struct{}) {
	switch e.Kind {
	case KindNode:
		// single node, no adjacency

	case KindConnected:
		nodes := cliqueNodes(e)
		for _, a := range nodes {
			for _, b := range nodes {
				if a != b {
					set[Edge{From: a, To: b}] = struct{}{}
				}
			}
		}

	case KindDisconnected:
		for _, m := range e.Members {
			collectEdges(m, set)
		}
	}
}

func compareEdges(a, b Edge) int {
	if c := compareNodes(a.From, b.From); c != 0 {
		return c
	}

	return compareNodes(a.To, b.To)
}

func compareNodes(a, b Node) int {
	switch {
	case a < b:
		return -1

	case a > b:
		return 1

	default:
		return 0
	}
}

// ContainsNode reports whether the identifier occurs as a leaf anywhere in
// the expression. It does not require normal form.
func (e *Expr) ContainsNode(name Node) bool {
	if e.Kind == KindNode {
		return e.Node == name
	}

	for _, m := range e.Members {
		if m.ContainsNode(name) {
			return true
		}
	}

	return false
}

// Graph is the flat projection of an expression: its node set and edge
// set, ready for an external rendering tool.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Project derives the graph implied by the expression.
func (e *Expr) Project() *Graph {
	return &Graph{
		Nodes: e.Nodes(),
		Edges: e.Edges(),
	}
}

package lang

// Normalization rewrites an expression into its unique
// disjoint-union-of-cliques normal form:
//
//   - Empty graphs are fully disconnected: {} ⇒ []
//   - Single member graphs are just the member: [{A}] ⇒ A
//   - Fully connected graphs are flattened: {{A, B}, C} ⇒ {A, B, C}
//   - Connectivity distributes over disjointness, like rewriting nested
//     AND/OR into disjunctive normal form:
//     {[A, B], [C, D]} ⇒ [{A, C}, {A, D}, {B, C}, {B, D}]
//   - A component whose node set is a subset of a sibling's is subsumed
//     and dropped; duplicate nodes within a clique collapse.
//
// In normal form, an expression is a single node, a single clique of
// distinct nodes, or a disconnected group of such components with no
// component's node set contained in a sibling's.

// Normalize returns the canonical normal form of the expression.
// It is total, pure, deterministic, and idempotent. The cost is
// proportional to the cross-product blow-up of connected groups over
// disconnected groups, worst case exponential in nesting depth.
func (e *Expr) Normalize() *Expr {
	switch e.Kind {
	case KindNode:
		return NewNode(e.Node)

	case KindConnected:
		return normalizeConnected(e.Members)

	case KindDisconnected:
		return normalizeDisconnected(e.Members)

	default:
		return e.Clone()
	}
}

// normalizeConnected reduces a connected group by distributing connectivity
// over the disjunctive branches of its members:
//
//	{A, [B, C], D} ⇒
//	[{A}] ⊗ [B, C] ⊗ [{D}] ⇒
//	[{A, B, D}, {A, C, D}]
//
// Each member contributes one branch per disjoint component (a node or a
// connected group contributes itself as its only branch); the result is
// one clique per combination in the cross product of all branches.
func normalizeConnected(members []*Expr) *Expr {
	// combos accumulates the cross product left to right. Every entry is
	// the node list of one clique under construction; normalized
	// sub-expressions contain only node leaves at clique level, so plain
	// node lists suffice.
	var combos [][]Node

	for _, m := range members {
		if len(combos) == 0 {
			combos = append(combos, nil)
		}

		switch norm := m.Normalize(); norm.Kind {
		case KindNode:
			// combos = [[A],[B]], member C ⇒ [[A,C],[B,C]]
			for i := range combos {
				combos[i] = append(combos[i], norm.Node)
			}

		case KindConnected:
			// combos = [[A],[B]], member {C,D} ⇒ [[A,C,D],[B,C,D]]
			nodes := cliqueNodes(norm)
			for i := range combos {
				combos[i] = append(combos[i], nodes...)
			}

		case KindDisconnected:
			// combos = [[A],[B]], member [C,{D,E}] ⇒
			// [[A,C],[A,D,E],[B,C],[B,D,E]]
			fresh := make([][]Node, 0, len(combos)*len(norm.Members))

			for _, combo := range combos {
				for _, branch := range norm.Members {
					next := make([]Node, len(combo), len(combo)+1)
					copy(next, combo)
					fresh = append(fresh, append(next, cliqueNodes(branch)...))
				}
			}

			combos = fresh
		}
	}

	comps := make([]*Expr, 0, len(combos))
	for _, combo := range combos {
		comps = append(comps, clique(dedupNodes(combo)))
	}

	return rebuild(subsume(comps))
}

// normalizeDisconnected reduces a disconnected group by normalizing each
// member and splicing nested disconnected groups into the same level:
//
//	[A, [B, C], {D, E}] ⇒ [A, B, C, {D, E}]
func normalizeDisconnected(members []*Expr) *Expr {
	var comps []*Expr

	for _, m := range members {
		norm := m.Normalize()
		if norm.Kind == KindDisconnected {
			comps = append(comps, norm.Members...)
		} else {
			comps = append(comps, norm)
		}
	}

	return rebuild(subsume(comps))
}

// cliqueNodes returns the node list of an already-normalized component,
// which is either a single node or a flat clique of nodes.
func cliqueNodes(e *Expr) []Node {
	if e.Kind == KindNode {
		return []Node{e.Node}
	}

	nodes := make([]Node, 0, len(e.Members))
	for _, m := range e.Members {
		nodes = append(nodes, m.Node)
	}

	return nodes
}

// clique builds a normal-form component from a node list: the sole node
// for a single-element list, an empty disconnected group for an empty one,
// and a connected group otherwise.
func clique(nodes []Node) *Expr {
	switch len(nodes) {
	case 0:
		return NewDisconnected()

	case 1:
		return NewNode(nodes[0])

	default:
		members := make([]*Expr, len(nodes))
		for i, n := range nodes {
			members[i] = NewNode(n)
		}

		return NewConnected(members...)
	}
}

// dedupNodes removes duplicate node names, keeping first occurrences in
// their original order.
func dedupNodes(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}

	seen := make(map[Node]struct{}, len(nodes))
	out := nodes[:0]

	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}

		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}

// subsume drops every component whose node set is a subset of a sibling's.
// Components with equal node sets keep only the earliest sibling. The
// surviving components cover the same graph: a clique over a superset of
// nodes already implies every edge of the subset clique.
func subsume(comps []*Expr) []*Expr {
	if len(comps) < 2 {
		return comps
	}

	sets := make([]map[Node]struct{}, len(comps))
	for i, c := range comps {
		sets[i] = nodeSet(c)
	}

	keep := make([]*Expr, 0, len(comps))

	for i := range comps {
		redundant := false

		for j := range comps {
			if i == j || !subset(sets[i], sets[j]) {
				continue
			}

			// A strict subset is always dropped; of equal sets, only the
			// earliest sibling survives.
			if len(sets[i]) < len(sets[j]) || j < i {
				redundant = true

				break
			}
		}

		if !redundant {
			keep = append(keep, comps[i])
		}
	}

	return keep
}

// rebuild collapses a component list into a single expression: the sole
// component alone, or a disconnected group of all of them.
func rebuild(comps []*Expr) *Expr {
	if len(comps) == 1 {
		return comps[0]
	}

	return NewDisconnected(comps...)
}

// nodeSet collects the set of node names reachable in the tree.
func nodeSet(e *Expr) map[Node]struct{} {
	set := make(map[Node]struct{})
	collectNodes(e, set)

	return set
}

func collectNodes(e *Expr, set map[Node]struct{}) {
	if e.Kind == KindNode {
		set[e.Node] = struct{}{}

		return
	}

	for _, m := range e.Members {
		collectNodes(m, set)
	}
}

// subset reports whether every element of a is in b.
func subset(a, b map[Node]struct{}) bool {
	if len(a) > len(b) {
		return false
	}

	for n := range a {
		if _, ok := b[n]; !ok {
			return false
		}
	}

	return true
}

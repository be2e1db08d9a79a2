// Package lang implements the cliq set-expression graph language.
//
// A cliq expression describes an undirected graph as nested groupings of
// identifiers: a connected group declares its members pairwise adjacent
// (a clique), and a disconnected group declares its members mutually
// non-adjacent as whole components (a disjoint union).
//
// # Grammar
//
// Informal EBNF:
//
//	Program      → Assignment* Expression EOF
//	Assignment   → Identifier '=' Expression
//	Expression   → Identifier | Connected | Disconnected
//	Connected    → '{' Sequence '}'
//	Disconnected → '[' Sequence ']'
//	Sequence     → (Expression (',' Expression)* ','?)?
//	Identifier   → ASCII letter (ASCII letter | digit)*
//
// Whitespace around tokens is insignificant. A trailing comma inside a
// sequence is allowed, and sequences may be empty.
//
// # Example
//
//	G1 = {A, [B, C]}
//	G2 = [A, B]
//	{X, G2}
//
// # Normal form
//
// Every expression has a unique disjoint-union-of-cliques normal form,
// computed by [Expr.Normalize]:
//
//   - Empty graphs are fully disconnected: {} ⇒ []
//   - Single member groups collapse: [{A}] ⇒ A
//   - Nested connected groups flatten: {{A, B}, C} ⇒ {A, B, C}
//   - Connectivity distributes over disjointness:
//     {[A, B], [C, D]} ⇒ [{A, C}, {A, D}, {B, C}, {B, D}]
//   - Redundant components are subsumed: a component whose node set is a
//     subset of a sibling's is dropped.
//
// # Resolution
//
// Assignments bind names to expression values at the point of evaluation.
// An [Env] carries the bindings of one session together with an immutable
// [Config] policy governing rebinding (shadowing) and self-reference
// (recursion). Unbound identifiers are valid and denote atomic nodes.
package lang

package lang

import (
	"context"
	"testing"
	"unicode/utf8"
)

// FuzzParseExpr tests the parser with random inputs to find edge cases.
func FuzzParseExpr(f *testing.F) {
	// Seed corpus with known valid and invalid inputs
	f.Add("A")
	f.Add("{}")
	f.Add("[]")
	f.Add("{A, B, C}")
	f.Add("[A, {B, C}]")
	f.Add("{A, [{B, C}, D], E}")
	f.Add("{A, B,}")
	f.Add("{A, B")
	f.Add("1A")
	f.Add("G = {A}")
	f.Add("  { A ,\n B }  ")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		// The cross-product cost of normalization is exponential in the
		// interleaving of group kinds, so cap the input size.
		if len(input) > 64 {
			t.Skip("input too large")
		}

		expr, err := ParseExpr(context.Background(), input, WithMaxDepth(50))
		if err != nil {
			return
		}

		// Accepted input must round-trip through the canonical rendering.
		again, err := ParseExpr(context.Background(), expr.String())
		if err != nil {
			t.Fatalf("canonical form %q failed to reparse: %v", expr, err)
		}

		if !expr.Equal(again) {
			t.Errorf("round trip changed %s into %s", expr, again)
		}

		// Normalization must terminate and be idempotent on any parse.
		norm := expr.Normalize()
		if !norm.Equal(norm.Normalize()) {
			t.Errorf("normalize not idempotent for %s", expr)
		}
	})
}

// FuzzParseLine exercises the statement-or-expression entry point.
func FuzzParseLine(f *testing.F) {
	f.Add("G = {A, B}")
	f.Add("{A, B}")
	f.Add("G=")
	f.Add("= A")
	f.Add("G1 = [G2, {A}]")

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			t.Skip("invalid UTF-8")
		}

		stmt, expr, err := ParseLine(context.Background(), input, WithMaxDepth(50))
		if err != nil {
			return
		}

		if (stmt == nil) == (expr == nil) {
			t.Errorf("expected exactly one result for %q, got stmt=%v expr=%v",
				input, stmt, expr)
		}
	})
}

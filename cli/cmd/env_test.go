package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

// kongContextWithVars builds a minimal kong context exposing the given
// model vars, the way cli.Run wires them for the commands.
func kongContextWithVars(t *testing.T, vars kong.Vars) context.Context {
	t.Helper()

	var grammar struct{}

	parser, err := kong.New(&grammar, vars)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(nil)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

// TestMakeEnvNoKongContext tests that makeEnv works without CLI wiring.
func TestMakeEnvNoKongContext(t *testing.T) {
	env, err := makeEnv(context.Background(), policyConfig{})
	if err != nil {
		t.Fatalf("makeEnv: %v", err)
	}

	if env.Len() != 0 {
		t.Errorf("expected empty environment, got %d bindings", env.Len())
	}
}

// TestMakeEnvMissingPrelude tests that an absent prelude file is tolerated.
func TestMakeEnvMissingPrelude(t *testing.T) {
	ctx := kongContextWithVars(t, kong.Vars{
		PreludeIdentifier: filepath.Join(t.TempDir(), "prelude.cliq"),
	})

	env, err := makeEnv(ctx, policyConfig{})
	if err != nil {
		t.Fatalf("makeEnv: %v", err)
	}

	if env.Len() != 0 {
		t.Errorf("expected empty environment, got %d bindings", env.Len())
	}
}

// TestMakeEnvLoadsPrelude tests that prelude bindings seed the environment.
func TestMakeEnvLoadsPrelude(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.cliq")
	prelude := "Base = {A, B}\nPair = [C, D]\n"

	if err := os.WriteFile(path, []byte(prelude), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := kongContextWithVars(t, kong.Vars{PreludeIdentifier: path})

	env, err := makeEnv(ctx, policyConfig{})
	if err != nil {
		t.Fatalf("makeEnv: %v", err)
	}

	if env.Len() != 2 {
		t.Fatalf("expected 2 bindings, got %d", env.Len())
	}

	if env.Lookup("Base").String() != "{A, B}" {
		t.Errorf("unexpected Base binding: %s", env.Lookup("Base"))
	}
}

// TestMakeEnvPreludeParseError tests the error for a malformed prelude.
func TestMakeEnvPreludeParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.cliq")

	if err := os.WriteFile(path, []byte("Base = {A,"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := kongContextWithVars(t, kong.Vars{PreludeIdentifier: path})

	_, err := makeEnv(ctx, policyConfig{})
	if !errors.Is(err, ErrLoadPrelude) {
		t.Errorf("expected ErrLoadPrelude, got %v", err)
	}
}

// TestMakeEnvPreludePolicy tests that the command policy governs prelude
// resolution.
func TestMakeEnvPreludePolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.cliq")
	prelude := "G = A\nG = B\n"

	if err := os.WriteFile(path, []byte(prelude), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := kongContextWithVars(t, kong.Vars{PreludeIdentifier: path})

	if _, err := makeEnv(ctx, policyConfig{}); !errors.Is(err, ErrLoadPrelude) {
		t.Errorf("expected ErrLoadPrelude without shadowing, got %v", err)
	}

	env, err := makeEnv(ctx, policyConfig{Shadowing: true})
	if err != nil {
		t.Fatalf("makeEnv with shadowing: %v", err)
	}

	if env.Lookup("G").String() != "B" {
		t.Errorf("expected later binding to win, got %s", env.Lookup("G"))
	}
}

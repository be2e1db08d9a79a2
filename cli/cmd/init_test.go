package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
)

// initContext builds a kong context over a representative flag grammar
// with the config path var pointing into a temp directory.
func initContext(t *testing.T, args []string) (context.Context, string) {
	t.Helper()

	var grammar struct {
		LogLevel  string `default:"info" name:"log-level"`
		LogFormat string `default:"json" name:"log-format"`
		Source    []string
	}

	confPath := filepath.Join(t.TempDir(), "config")

	parser, err := kong.New(&grammar, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx), confPath + ".json"
}

// TestInitRun tests generation of the default configuration file.
func TestInitRun(t *testing.T) {
	ctx, confFile := initContext(t, []string{"--log-level", "debug"})

	if err := (&Init{}).Run(ctx); err != nil {
		t.Fatalf("Init.Run(): %v", err)
	}

	data, err := os.ReadFile(confFile)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("invalid JSON config: %v\n%s", err, data)
	}

	if values["log-level"] != "debug" {
		t.Errorf("expected log-level=debug, got %v", values["log-level"])
	}

	if values["log-format"] != "json" {
		t.Errorf("expected log-format=json, got %v", values["log-format"])
	}

	if _, ok := values["help"]; ok {
		t.Error("help flag must not be persisted")
	}
}

// TestInitRunExisting tests that an existing file is preserved without
// --force.
func TestInitRunExisting(t *testing.T) {
	ctx, confFile := initContext(t, nil)

	if err := os.WriteFile(confFile, []byte(`{"log-level":"warn"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("expected ErrFileExists, got %v", err)
	}

	data, err := os.ReadFile(confFile)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != `{"log-level":"warn"}` {
		t.Error("existing config was modified")
	}
}

// TestInitRunForce tests that --force overwrites an existing file.
func TestInitRunForce(t *testing.T) {
	ctx, confFile := initContext(t, nil)

	if err := os.WriteFile(confFile, []byte(`{"log-level":"warn"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&Init{Force: true}).Run(ctx); err != nil {
		t.Fatalf("Init.Run() with --force: %v", err)
	}

	var values map[string]any

	data, err := os.ReadFile(confFile)
	if err != nil {
		t.Fatal(err)
	}

	if err := json.Unmarshal(data, &values); err != nil {
		t.Fatalf("invalid JSON config: %v", err)
	}

	if values["log-level"] != "info" {
		t.Errorf("expected regenerated defaults, got %v", values["log-level"])
	}
}

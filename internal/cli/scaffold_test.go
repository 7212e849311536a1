package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func captureRunner(t *testing.T) **ScaffoldConfig {
	t.Helper()
	var captured *ScaffoldConfig
	scaffoldRunner = func(ctx context.Context, cfg *ScaffoldConfig, _ Streams) error {
		captured = cfg
		return nil
	}
	t.Cleanup(func() { scaffoldRunner = runScaffold })
	return &captured
}

func newTestRoot(args ...string) *cobra.Command {
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if args == nil {
		// cobra falls back to os.Args on a nil slice.
		args = []string{}
	}
	root.SetArgs(args)
	return root
}

func TestScaffoldConfigFromFlags(t *testing.T) {
	captured := captureRunner(t)

	root := newTestRoot(
		"--verbose",
		"--lang", "Rust",
		"--out", "./build",
		"--answers", "answers.yaml",
		"--from-openapi", "openapi.yaml",
		"--dry-run",
		"--default-endpoints", "5",
		"--default-schemas", "0",
		"demo",
	)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := *captured
	if cfg == nil {
		t.Fatalf("expected config to be captured")
	}
	if cfg.ProjectName != "demo" {
		t.Errorf("project name mismatch: got %q", cfg.ProjectName)
	}
	if cfg.Lang != LangRust {
		t.Errorf("lang mismatch: got %q", cfg.Lang)
	}
	if cfg.Out != "./build" {
		t.Errorf("out mismatch: got %q", cfg.Out)
	}
	if cfg.Answers != "answers.yaml" || cfg.FromOpenAPI != "openapi.yaml" {
		t.Errorf("inputs mismatch: answers=%q openapi=%q", cfg.Answers, cfg.FromOpenAPI)
	}
	if !cfg.DryRun || !cfg.Verbose {
		t.Errorf("expected dry-run and verbose, got %+v", cfg)
	}
	if cfg.DefaultEndpoints != 5 || cfg.DefaultSchemas != 0 {
		t.Errorf("default counts mismatch: %d/%d", cfg.DefaultEndpoints, cfg.DefaultSchemas)
	}
}

func TestScaffoldConfigDefaults(t *testing.T) {
	captured := captureRunner(t)

	if err := newTestRoot("demo").Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	cfg := *captured
	if cfg.Lang != LangGo {
		t.Errorf("lang: want go got %q", cfg.Lang)
	}
	if cfg.Out != "demo" {
		t.Errorf("out should default to the project name, got %q", cfg.Out)
	}
	if cfg.DefaultEndpoints != 2 || cfg.DefaultSchemas != 2 {
		t.Errorf("default counts: got %d/%d", cfg.DefaultEndpoints, cfg.DefaultSchemas)
	}
}

func TestScaffoldConfigPrecedence(t *testing.T) {
	captured := captureRunner(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := strings.TrimSpace(`lang: rust
out: from-config
answers: cfg-answers.yaml
from_openapi: cfg-openapi.yaml
dry-run: true
verbose: "yes"
defaultEndpoints: 4
defaultSchemas: "3"
`) + "\n"
	if err := os.WriteFile(configPath, []byte(configContent), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newTestRoot(
		"--config", configPath,
		"--lang", "go",
		"--dry-run=false",
		"--default-schemas", "1",
		"demo",
	)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	cfg := *captured
	if cfg.Lang != LangGo {
		t.Errorf("lang: want go got %q", cfg.Lang)
	}
	if cfg.Out != "from-config" {
		t.Errorf("out: want from-config got %q", cfg.Out)
	}
	if cfg.Answers != "cfg-answers.yaml" || cfg.FromOpenAPI != "cfg-openapi.yaml" {
		t.Errorf("config inputs lost: %+v", cfg)
	}
	if cfg.DryRun {
		t.Errorf("expected dry-run false after flag override")
	}
	if !cfg.Verbose {
		t.Errorf("expected verbose true from config file")
	}
	if cfg.DefaultEndpoints != 4 || cfg.DefaultSchemas != 1 {
		t.Errorf("default counts: got %d/%d", cfg.DefaultEndpoints, cfg.DefaultSchemas)
	}
	if cfg.ConfigPath != configPath {
		t.Errorf("config path mismatch: got %q", cfg.ConfigPath)
	}
}

func TestScaffoldUsageErrors(t *testing.T) {
	captureRunner(t)

	badConfig := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badConfig, []byte("unknown: value\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no project name", args: nil, want: "expected exactly one <project-name> argument, got 0"},
		{name: "two project names", args: []string{"a", "b"}, want: "got 2"},
		{name: "unknown config key", args: []string{"--config", badConfig, "demo"}, want: "unknown field"},
		{name: "missing config file", args: []string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "demo"}, want: "read config file"},
		{name: "unsupported lang", args: []string{"--lang", "cobol", "demo"}, want: `unsupported --lang "cobol"`},
		{name: "bad go module path", args: []string{"has space"}, want: "not a valid Go module path"},
		{name: "bad cargo name", args: []string{"--lang", "rust", "1api"}, want: "not a valid Cargo package name"},
		{name: "negative default", args: []string{"--default-endpoints", "-1", "demo"}, want: "must not be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := newTestRoot(tc.args...).Execute()
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, ErrUsage) {
				t.Fatalf("expected usage error, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestInit_WritesSampleConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "apigen.yaml")

	root := newTestRoot("init", "--out", path)
	var out bytes.Buffer
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("init execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "apigen configuration") {
		t.Fatalf("unexpected config contents: %s", s)
	}
	if !strings.Contains(out.String(), "Wrote sample config to ") {
		t.Fatalf("missing confirmation, got %q", out.String())
	}
}

// Uncommenting every sample key must yield a config the scaffold command
// accepts.
func TestInit_SampleKeysAreKnown(t *testing.T) {
	t.Parallel()
	var lines []string
	for _, line := range strings.Split(sampleConfigYAML, "\n") {
		if strings.HasPrefix(line, "# ") && strings.Contains(line, ": ") && !strings.HasPrefix(line, "# apigen") {
			lines = append(lines, strings.TrimPrefix(line, "# "))
		}
	}
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &raw); err != nil {
		t.Fatalf("sample keys do not parse: %v", err)
	}
	if len(raw) != 8 {
		t.Fatalf("expected 8 documented keys, got %d: %v", len(raw), raw)
	}

	path := filepath.Join(t.TempDir(), "apigen.yaml")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := defaultScaffoldConfig()
	if err := applyScaffoldConfigFromFile(&cfg, path); err != nil {
		t.Fatalf("sample config rejected: %v", err)
	}
	if cfg.Lang != LangGo || cfg.DefaultEndpoints != 2 || cfg.FromOpenAPI != "./openapi.yaml" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestInit_ExistingWithoutForce(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "apigen.yaml")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("prewrite: %v", err)
	}

	err := newTestRoot("init", "--out", path).Execute()
	if err == nil {
		t.Fatalf("expected error for existing file without --force")
	}
	if _, ok := err.(usageError); !ok {
		t.Fatalf("expected usage error, got %T: %v", err, err)
	}

	if err := newTestRoot("init", "--out", path, "--force").Execute(); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) == "x" {
		t.Fatalf("--force did not overwrite")
	}
}

// Package testutil provides golden-file helpers for apigen renderer tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"

	"github.com/mark3labs/apigen/internal/project"
)

// Case is one golden archive: a model description in "input.yaml" and the
// expected files under "want/".
type Case struct {
	Name  string
	Path  string
	Input []byte
	Want  map[string][]byte

	archive *txtar.Archive
}

// parseCase builds a Case from a parsed archive.
func parseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{Name: name, Want: make(map[string][]byte), archive: ar}
	for _, f := range ar.Files {
		switch {
		case f.Name == "input.yaml":
			c.Input = f.Data
		case strings.HasPrefix(f.Name, "want/"):
			c.Want[strings.TrimPrefix(f.Name, "want/")] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected input.yaml or want/*)", f.Name)
		}
	}
	if c.Input == nil {
		return nil, fmt.Errorf("missing input.yaml in archive")
	}
	if len(c.Want) == 0 {
		return nil, fmt.Errorf("missing want/* files in archive")
	}
	return c, nil
}

// LoadCases loads every *.txtar archive in dir, sorted by name.
func LoadCases(t *testing.T, dir string) []*Case {
	t.Helper()
	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}
	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}
	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := parseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}
		c.Path = file
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases
}

type modelInput struct {
	Project   string `yaml:"project"`
	Style     string `yaml:"style"`
	Endpoints []struct {
		Path   string `yaml:"path"`
		Method string `yaml:"method"`
	} `yaml:"endpoints"`
	Schemas []struct {
		Name string `yaml:"name"`
		Kind string `yaml:"kind"`
	} `yaml:"schemas"`
}

// Model decodes the case input into a project.Model.
func (c *Case) Model(t *testing.T) *project.Model {
	t.Helper()
	var in modelInput
	if err := yaml.Unmarshal(c.Input, &in); err != nil {
		t.Fatalf("%s: decode input.yaml: %v", c.Name, err)
	}
	style, err := project.ParseStyle(in.Style)
	if err != nil {
		t.Fatalf("%s: %v", c.Name, err)
	}
	m := &project.Model{ProjectName: in.Project, Style: style}
	for _, ep := range in.Endpoints {
		method, err := project.ParseMethod(ep.Method)
		if err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
		m.Endpoints = append(m.Endpoints, project.Endpoint{Path: ep.Path, Method: method})
	}
	for _, s := range in.Schemas {
		kind, err := project.ParseSchemaKind(s.Kind)
		if err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
		m.Schemas = append(m.Schemas, project.SchemaField{Name: s.Name, Kind: kind})
	}
	return m
}

// Check compares got against the wanted files. Only files listed under
// want/ are compared. With update set the archive is rewritten instead.
func (c *Case) Check(t *testing.T, got map[string][]byte, update bool) {
	t.Helper()
	if update {
		c.update(t, got)
		return
	}
	for name, want := range c.Want {
		g, ok := got[name]
		if !ok {
			t.Errorf("missing output file: %q", name)
			continue
		}
		if diff := cmp.Diff(normalizeContent(want), normalizeContent(g)); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func (c *Case) update(t *testing.T, got map[string][]byte) {
	t.Helper()
	ar := &txtar.Archive{Comment: c.archive.Comment}
	ar.Files = append(ar.Files, txtar.File{Name: "input.yaml", Data: c.Input})
	names := make([]string, 0, len(c.Want))
	for name := range c.Want {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ar.Files = append(ar.Files, txtar.File{Name: "want/" + name, Data: got[name]})
	}
	if err := os.WriteFile(c.Path, txtar.Format(ar), 0o644); err != nil {
		t.Fatalf("update %s: %v", c.Path, err)
	}
}

// normalizeContent trims trailing whitespace on every line and trailing
// newlines at the end.
func normalizeContent(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

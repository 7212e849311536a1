// Package rustemitter renders apigen projects for Cargo: a Cargo.toml
// manifest and src/main.rs served by tide, with async-graphql for GraphQL
// projects.
package rustemitter

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/mark3labs/apigen/internal/emitter"
	"github.com/mark3labs/apigen/internal/project"
	"github.com/mark3labs/apigen/internal/projectfs"
)

const (
	ManifestFile = "Cargo.toml"
	SourceFile   = "main.rs"

	packageVersion = "0.1.0"
	edition        = "2021"
)

var crateName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Options controls how the Rust emitter writes a project.
type Options = emitter.Options

// ValidateProjectName reports whether name is usable as a Cargo package name.
func ValidateProjectName(name string) error {
	if !crateName.MatchString(name) {
		return fmt.Errorf("project name %q is not a valid Cargo package name (letters, digits, '-' and '_', starting with a letter)", name)
	}
	return nil
}

// Emit renders m and writes it to opts.OutDir.
func Emit(ctx context.Context, m *project.Model, opts Options) (*emitter.Result, error) {
	return emitter.Emit(ctx, "rustemitter", m, Render, opts)
}

// Render produces Cargo.toml and src/main.rs for m.
func Render(m *project.Model) emitter.Rendered {
	data := newTemplateData(m)
	return emitter.Rendered{
		Manifest: projectfs.File{RelPath: ManifestFile, Content: renderCargoToml(m)},
		Source:   projectfs.File{RelPath: filepath.Join(projectfs.SourceDir, SourceFile), Content: execute(mainTmpl(m.Style), data)},
	}
}

type cargoManifest struct {
	Package      cargoPackage   `toml:"package"`
	Dependencies map[string]any `toml:"dependencies"`
}

type cargoPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Edition string `toml:"edition"`
}

// crate is a dependency that needs more than a version requirement.
type crate struct {
	Version  string   `toml:"version"`
	Features []string `toml:"features,omitempty"`
}

func dependencies(s project.Style) map[string]any {
	deps := map[string]any{
		"tide":      "0.16.0",
		"async-std": crate{Version: "1.8.0", Features: []string{"attributes"}},
	}
	switch s {
	case project.StyleREST:
	case project.StyleGraphQL:
		deps["async-graphql"] = "5.0"
		deps["async-graphql-tide"] = "5.0"
		deps["serde"] = crate{Version: "1.0", Features: []string{"derive"}}
		deps["serde_json"] = "1.0"
	default:
		panic(fmt.Sprintf("rustemitter: unsupported style %s", s))
	}
	return deps
}

func renderCargoToml(m *project.Model) []byte {
	manifest := cargoManifest{
		Package:      cargoPackage{Name: m.ProjectName, Version: packageVersion, Edition: edition},
		Dependencies: dependencies(m.Style),
	}
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(manifest); err != nil {
		panic(fmt.Sprintf("rustemitter: encode %s: %v", ManifestFile, err))
	}
	return buf.Bytes()
}

type templateData struct {
	Endpoints []project.Endpoint
	Queries   []project.SchemaField
	Mutations []project.SchemaField
	Endpoint  project.Endpoint
}

func newTemplateData(m *project.Model) templateData {
	var data templateData
	switch m.Style {
	case project.StyleREST:
		data.Endpoints = m.Endpoints
	case project.StyleGraphQL:
		data.Queries = m.Queries()
		data.Mutations = m.Mutations()
		data.Endpoint = project.GraphQLEndpoint
	default:
		panic(fmt.Sprintf("rustemitter: unsupported style %s", m.Style))
	}
	return data
}

func mainTmpl(s project.Style) *template.Template {
	switch s {
	case project.StyleREST:
		return restMainTmpl
	case project.StyleGraphQL:
		return graphqlMainTmpl
	default:
		panic(fmt.Sprintf("rustemitter: unsupported style %s", s))
	}
}

func execute(tmpl *template.Template, data templateData) []byte {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("rustemitter: render %s: %v", tmpl.Name(), err))
	}
	return buf.Bytes()
}

// lower maps an HTTP method onto the tide route builder name.
func lower(m project.Method) string { return strings.ToLower(string(m)) }

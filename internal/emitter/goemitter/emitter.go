// Package goemitter renders apigen projects for the Go toolchain: a go.mod
// manifest and src/main.go served through gorilla/mux, with graphql-go for
// GraphQL projects.
package goemitter

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"

	"github.com/mark3labs/apigen/internal/emitter"
	"github.com/mark3labs/apigen/internal/project"
	"github.com/mark3labs/apigen/internal/projectfs"
)

const (
	ManifestFile = "go.mod"
	SourceFile   = "main.go"

	goVersion = "1.22"
)

type dependency struct {
	Path    string
	Version string
}

var (
	restDeps = []dependency{
		{Path: "github.com/gorilla/mux", Version: "v1.8.1"},
	}
	graphqlDeps = []dependency{
		{Path: "github.com/gorilla/mux", Version: "v1.8.1"},
		{Path: "github.com/graphql-go/graphql", Version: "v0.8.1"},
		{Path: "github.com/graphql-go/handler", Version: "v0.2.4"},
	}
)

// Options controls how the Go emitter writes a project.
type Options = emitter.Options

// ValidateProjectName reports whether name can be used as a module path.
func ValidateProjectName(name string) error {
	if err := module.CheckImportPath(name); err != nil {
		return fmt.Errorf("project name %q is not a valid Go module path: %w", name, err)
	}
	return nil
}

// Emit renders m and writes it to opts.OutDir.
func Emit(ctx context.Context, m *project.Model, opts Options) (*emitter.Result, error) {
	return emitter.Emit(ctx, "goemitter", m, Render, opts)
}

// Render produces go.mod and src/main.go for m.
func Render(m *project.Model) emitter.Rendered {
	return emitter.Rendered{
		Manifest: projectfs.File{RelPath: ManifestFile, Content: renderGoMod(m)},
		Source:   projectfs.File{RelPath: filepath.Join(projectfs.SourceDir, SourceFile), Content: renderMain(m)},
	}
}

func dependencies(s project.Style) []dependency {
	switch s {
	case project.StyleREST:
		return restDeps
	case project.StyleGraphQL:
		return graphqlDeps
	default:
		panic(fmt.Sprintf("goemitter: unsupported style %s", s))
	}
}

func renderGoMod(m *project.Model) []byte {
	f := &modfile.File{Syntax: &modfile.FileSyntax{}}
	if err := f.AddModuleStmt(m.ProjectName); err != nil {
		panic(fmt.Sprintf("goemitter: module statement: %v", err))
	}
	if err := f.AddGoStmt(goVersion); err != nil {
		panic(fmt.Sprintf("goemitter: go statement: %v", err))
	}
	for _, dep := range dependencies(m.Style) {
		f.AddNewRequire(dep.Path, dep.Version, false)
	}
	f.Cleanup()
	return modfile.Format(f.Syntax)
}

// templateData names the slots the source templates fill. Every string in
// it comes from user input and is inserted verbatim.
type templateData struct {
	ProjectName string
	Endpoints   []project.Endpoint
	Queries     []project.SchemaField
	Mutations   []project.SchemaField
	Endpoint    project.Endpoint
}

func renderMain(m *project.Model) []byte {
	data := templateData{ProjectName: m.ProjectName}
	var tmpl *template.Template
	switch m.Style {
	case project.StyleREST:
		tmpl = restMainTmpl
		data.Endpoints = m.Endpoints
	case project.StyleGraphQL:
		tmpl = graphqlMainTmpl
		data.Queries = m.Queries()
		data.Mutations = m.Mutations()
		data.Endpoint = project.GraphQLEndpoint
	default:
		panic(fmt.Sprintf("goemitter: unsupported style %s", m.Style))
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("goemitter: render %s: %v", tmpl.Name(), err))
	}
	return buf.Bytes()
}

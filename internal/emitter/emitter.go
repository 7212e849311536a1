// Package emitter holds what the per-ecosystem emitters share: the rendered
// file pair, emit options and the render-then-write flow.
package emitter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mark3labs/apigen/internal/project"
	"github.com/mark3labs/apigen/internal/projectfs"
)

// Rendered is the output of a renderer: a manifest at the project root and
// one source file under src/.
type Rendered struct {
	Manifest projectfs.File
	Source   projectfs.File
}

// Files returns the manifest followed by the source file.
func (r Rendered) Files() []projectfs.File {
	return []projectfs.File{r.Manifest, r.Source}
}

// RenderFunc turns a model into files. It must be deterministic.
type RenderFunc func(m *project.Model) Rendered

// Options controls how a project is emitted.
type Options struct {
	OutDir string // required; the project directory
	DryRun bool   // plan only, write nothing
	Out    io.Writer
	Logger *slog.Logger
}

// Result returns the planned files and where they went.
type Result struct {
	ProjectName string
	OutDir      string
	Planned     []projectfs.PlannedFile
}

// Emit renders m with render and, unless opts.DryRun, writes the files.
func Emit(ctx context.Context, name string, m *project.Model, render RenderFunc, opts Options) (*Result, error) {
	_ = ctx
	if m == nil {
		return nil, fmt.Errorf("%s: nil project model", name)
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("%s: OutDir is required", name)
	}
	files := render(m).Files()
	res := &Result{ProjectName: m.ProjectName, OutDir: opts.OutDir, Planned: projectfs.Plan(files)}
	if opts.DryRun {
		return res, nil
	}
	w := projectfs.NewWriter(opts.Out, opts.Logger)
	if err := w.Write(m.ProjectName, opts.OutDir, files); err != nil {
		return nil, err
	}
	return res, nil
}

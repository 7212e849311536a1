// Package projectfs persists rendered project files.
package projectfs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// SourceDir is the subdirectory every generated project keeps its code in.
const SourceDir = "src"

// File is a rendered file relative to the project directory.
type File struct {
	RelPath string
	Content []byte
}

// PlannedFile describes a file that would be written.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Plan lists files in deterministic path order.
func Plan(files []File) []PlannedFile {
	planned := make([]PlannedFile, 0, len(files))
	for _, f := range files {
		planned = append(planned, PlannedFile{RelPath: filepath.ToSlash(f.RelPath), Size: len(f.Content), Mode: 0o644})
	}
	sort.Slice(planned, func(i, j int) bool { return planned[i].RelPath < planned[j].RelPath })
	return planned
}

// Writer writes project trees and reports completion on Out.
type Writer struct {
	Out    io.Writer
	Logger *slog.Logger
}

// NewWriter returns a Writer printing to out; nil out discards messages.
func NewWriter(out io.Writer, logger *slog.Logger) *Writer {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Writer{Out: out, Logger: logger}
}

// Write creates dir and dir/src when missing and writes files into it. An
// existing file is replaced without backup. A failure part way leaves the
// files already written in place.
func (w *Writer) Write(name, dir string, files []File) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve project directory: %w", err)
	}
	if err := ensureDir(abs); err != nil {
		return err
	}
	if err := ensureDir(filepath.Join(abs, SourceDir)); err != nil {
		return err
	}
	for _, f := range files {
		if err := writeFileAtomic(abs, f.RelPath, f.Content); err != nil {
			return fmt.Errorf("write %s: %w", f.RelPath, err)
		}
		w.Logger.Debug("wrote file", "path", filepath.Join(abs, f.RelPath), "bytes", len(f.Content))
	}
	fmt.Fprintf(w.Out, "Project '%s' created successfully!\n", name)
	return nil
}

func ensureDir(path string) error {
	st, err := os.Stat(path)
	if err == nil {
		if !st.IsDir() {
			return fmt.Errorf("create directory %s: not a directory", path)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place.
func writeFileAtomic(baseDir, relPath string, content []byte) error {
	fullPath := filepath.Join(baseDir, relPath)
	dir := filepath.Dir(fullPath)
	if err := ensureDir(dir); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-apigen-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	success := false
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		return fmt.Errorf("set file permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, fullPath); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	success = true
	return nil
}

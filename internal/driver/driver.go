// Package driver implements the file-boundary operation of spec.md §4.6/
// §6 "File boundary": read one source file, transform it, write one
// derived file beside it.
//
// Grounded on the teacher's build.go workspace-safety habit
// (cmd/racedetector/build.go's createWorkspace/cleanup pair, which
// refuses to clobber a caller's tree without an explicit signal) scaled
// down from a whole temp workspace to a single non-destructive write.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kolkov/instrumentor/internal/transform"
)

// Options controls one Run call. Force, unlike transform.Options, is a
// driver-level concern: it has no effect on the generated code, only on
// whether an existing output file may be overwritten.
type Options struct {
	Transform transform.Options
	Force     bool // overwrite an existing differently-sized output file
}

// Result reports what Run did, for the CLI to print a summary from.
type Result struct {
	InputPath  string
	OutputPath string
	Stats      transform.Stats
	Skipped    bool // true if the no-instrument marker short-circuited the walk
}

// Run reads path, transforms it, and writes the result to
// "<stem>__<tool>__.<ext>" beside it, per spec.md §6.
func Run(path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", path, err)
	}

	opts.Transform.OrigPath = path
	outPath := outputPath(path, toolName(opts.Transform.Tool))
	opts.Transform.InstPath = outPath

	res, err := transform.Transform(string(src), path, opts.Transform)
	if err != nil {
		return nil, err
	}

	if err := checkNonDestructive(outPath, len(res.Code), opts.Force); err != nil {
		return nil, err
	}
	if err := os.WriteFile(outPath, []byte(res.Code), 0o644); err != nil {
		return nil, fmt.Errorf("driver: write %s: %w", outPath, err)
	}

	return &Result{InputPath: path, OutputPath: outPath, Stats: res.Stats, Skipped: res.Passed}, nil
}

func toolName(tool string) string {
	if tool == "" {
		return transform.DefaultTool
	}
	return tool
}

// outputPath derives "<stem>__<tool>__.<ext>" from the input path,
// preserving its directory.
func outputPath(path, tool string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s__%s__%s", stem, tool, ext))
}

// checkNonDestructive refuses to silently overwrite a pre-existing output
// file whose size differs from what this run is about to write, unless
// force is set — the Go-idiomatic equivalent of the teacher's
// create-workspace-then-copy pattern, which never writes over a
// caller-owned path by construction.
func checkNonDestructive(outPath string, newSize int, force bool) error {
	if force {
		return nil
	}
	info, err := os.Stat(outPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("driver: stat %s: %w", outPath, err)
	}
	if info.Size() != int64(newSize) {
		return fmt.Errorf("driver: refusing to overwrite %s (existing size %d, new size %d); rerun with --force", outPath, info.Size(), newSize)
	}
	return nil
}

package driver

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		path string
		tool string
		want string
	}{
		{"main.js", "instrumentor", "main__instrumentor__.js"},
		{"src/app.js", "instrumentor", "src/app__instrumentor__.js"},
		{"a.b.js", "foo", "a.b__foo__.js"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.path, tt.tool); got != filepath.FromSlash(tt.want) {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.path, tt.tool, got, tt.want)
		}
	}
}

func TestRunWritesInstrumentedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.js")
	if err := os.WriteFile(src, []byte("var x = 1 + 2;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(src, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.Skipped {
		t.Fatalf("Run() Skipped = true, want false")
	}

	wantOut := filepath.Join(dir, "main__instrumentor__.js")
	if res.OutputPath != wantOut {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, wantOut)
	}
	if _, err := os.Stat(wantOut); err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if res.Stats.Total() == 0 {
		t.Errorf("Stats.Total() = 0, want > 0")
	}
}

func TestRunRefusesDestructiveOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.js")
	if err := os.WriteFile(src, []byte("var x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "main__instrumentor__.js")
	if err := os.WriteFile(out, []byte("not what the transformer would write"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Run(src, Options{}); err == nil {
		t.Fatalf("Run() with differently-sized existing output: want error, got nil")
	}

	if _, err := Run(src, Options{Force: true}); err != nil {
		t.Fatalf("Run() with Force: want nil error, got %v", err)
	}
}

func TestRunPassesThroughMarkedSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.js")
	if err := os.WriteFile(src, []byte("// NO_INSTRUMENT\nvar x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Run(src, Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !res.Skipped {
		t.Errorf("Skipped = false, want true for marked source")
	}
}

package main

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func withMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	FS = fs
	t.Cleanup(func() { FS = afero.NewOsFs() })
	return fs
}

func TestHandlerSingleFileOverwritesInPlace(t *testing.T) {
	fs := withMemFs(t)
	if err := afero.WriteFile(fs, "main.ctl", []byte("int x=1;"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	status := Handler([]string{"main.ctl"}, map[string]string{})
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}

	out, err := afero.ReadFile(fs, "main.ctl")
	if err != nil {
		t.Fatalf("reading formatted output: %v", err)
	}
	if !strings.Contains(string(out), "int x = 1;") {
		t.Errorf("expected canonical spacing, got:\n%s", out)
	}
}

func TestHandlerSingleFileWritesToOutputFlag(t *testing.T) {
	fs := withMemFs(t)
	if err := afero.WriteFile(fs, "main.ctl", []byte("int x=1;"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	status := Handler([]string{"main.ctl"}, map[string]string{"o": "out.ctl"})
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}

	if _, err := afero.ReadFile(fs, "main.ctl"); err != nil {
		t.Fatalf("expected original file to survive untouched: %v", err)
	}
	out, err := afero.ReadFile(fs, "out.ctl")
	if err != nil {
		t.Fatalf("reading -o output: %v", err)
	}
	if !strings.Contains(string(out), "int x = 1;") {
		t.Errorf("expected canonical spacing, got:\n%s", out)
	}
}

func TestHandlerSingleFileWritesAstDump(t *testing.T) {
	fs := withMemFs(t)
	if err := afero.WriteFile(fs, "main.ctl", []byte("int x=1;"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	status := Handler([]string{"main.ctl"}, map[string]string{"a": "main.ast"})
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}

	dump, err := afero.ReadFile(fs, "main.ast")
	if err != nil {
		t.Fatalf("reading AST dump: %v", err)
	}
	if !strings.Contains(string(dump), "VarDecl") {
		t.Errorf("expected AST dump to name the VarDecl node, got:\n%s", dump)
	}
}

func TestHandlerDirectoryModeRejectsOutputFlags(t *testing.T) {
	fs := withMemFs(t)
	if err := fs.MkdirAll("pkg", 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	status := Handler([]string{"pkg"}, map[string]string{"o": "out.ctl"})
	if status == 0 {
		t.Fatal("expected a nonzero status when -o is used in directory mode")
	}
}

func TestHandlerDirectoryModeFormatsEveryCtlFileAndLogsFailures(t *testing.T) {
	fs := withMemFs(t)
	if err := afero.WriteFile(fs, "pkg/a.ctl", []byte("int x=1;"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := afero.WriteFile(fs, "pkg/b.ctl", []byte("int y = `;"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := afero.WriteFile(fs, "pkg/notes.txt", []byte("ignored"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	status := Handler([]string{"pkg"}, map[string]string{})
	if status != 0 {
		t.Fatalf("expected status 0, got %d", status)
	}

	a, err := afero.ReadFile(fs, "pkg/a.ctl")
	if err != nil {
		t.Fatalf("reading pkg/a.ctl: %v", err)
	}
	if !strings.Contains(string(a), "int x = 1;") {
		t.Errorf("expected a.ctl to be formatted, got:\n%s", a)
	}

	lintErrors, err := afero.ReadFile(fs, lintErrorsFile)
	if err != nil {
		t.Fatalf("reading %s: %v", lintErrorsFile, err)
	}
	if !strings.Contains(string(lintErrors), "pkg/b.ctl") {
		t.Errorf("expected %s to record the failing file, got:\n%s", lintErrorsFile, lintErrors)
	}
}

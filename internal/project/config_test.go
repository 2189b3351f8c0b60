package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"markxs/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[fixtures]
dir = "docs"
expected = "docs/golden"

[parser]
max_diagnostics = 25
`)

	cfg, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser.MaxDiagnostics != 25 {
		t.Errorf("max_diagnostics = %d, want 25", cfg.Parser.MaxDiagnostics)
	}
	if cfg.FixturesDir() != filepath.Join(dir, "docs") {
		t.Errorf("fixtures dir = %q", cfg.FixturesDir())
	}
	if cfg.ExpectedDir() != filepath.Join(dir, "docs", "golden") {
		t.Errorf("expected dir = %q", cfg.ExpectedDir())
	}
}

func TestLoadPartialManifestKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[fixtures]\ndir = \"cases\"\n")

	cfg, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Fixtures.Dir != "cases" {
		t.Errorf("fixtures dir = %q", cfg.Fixtures.Dir)
	}
	if cfg.Parser.MaxDiagnostics != project.Default().Parser.MaxDiagnostics {
		t.Errorf("max_diagnostics = %d, want default", cfg.Parser.MaxDiagnostics)
	}
}

func TestLoadFindsManifestUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[parser]\nmax_diagnostics = 7\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := project.Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Parser.MaxDiagnostics != 7 {
		t.Errorf("max_diagnostics = %d, want 7", cfg.Parser.MaxDiagnostics)
	}
}

func TestLoadWithoutManifestUsesDefaults(t *testing.T) {
	// TempDir sits under the system temp root, which has no manifest above
	// it in practice; guard against one anyway.
	path, ok, err := project.FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		t.Skipf("unexpected manifest on this machine: %s", path)
	}

	cfg, err := project.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != project.Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadRejectsNegativeLimit(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[parser]\nmax_diagnostics = -1\n")
	if _, err := project.Load(dir); err == nil {
		t.Fatal("expected an error for a negative limit")
	}
}

package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"retitle/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if CheckDirectoryAccess("test", f).Passed {
		t.Fatal("expected failure for file path")
	}
	if CheckReadable("test", f).Passed {
		t.Fatal("expected readable check to fail for file path")
	}
}

func TestCheckReadable(t *testing.T) {
	if !CheckReadable("test", t.TempDir()).Passed {
		t.Fatal("expected temp dir to be readable")
	}
	if CheckReadable("test", filepath.Join(t.TempDir(), "missing")).Passed {
		t.Fatal("expected missing dir to fail")
	}
}

func TestCheckCreatable(t *testing.T) {
	base := t.TempDir()
	missing := filepath.Join(base, "a", "b", "c")
	result := CheckCreatable("test", missing)
	if !result.Passed {
		t.Fatalf("expected missing dir under writable temp to pass, got: %s", result.Detail)
	}
	if !CheckCreatable("test", base).Passed {
		t.Fatal("expected existing dir to pass")
	}
}

func TestRunAll(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.HistoryDB = filepath.Join(base, "data", "history.db")
	cfg.Paths.LogDir = ""

	results := RunAll(&cfg)
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("RunAll = %+v", results)
	}

	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Paths.LogDir = blocker
	results = RunAll(&cfg)
	if len(results) != 2 {
		t.Fatalf("RunAll returned %d results", len(results))
	}
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Log directory" {
		t.Errorf("Failed = %+v", failed)
	}
	if RunAll(nil) != nil {
		t.Error("RunAll(nil) should return nil")
	}
}

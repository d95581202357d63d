package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// TestAddGitignoreEntry verifies entries are appended once with a trailing newline.
func TestAddGitignoreEntry(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("node_modules"), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	target := filepath.Join(root, ".shici", "history.*")
	updated, err := addGitignoreEntry(root, target)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if !updated {
		t.Fatalf("expected .gitignore to be updated")
	}
	updated, err = addGitignoreEntry(root, target)
	if err != nil {
		t.Fatalf("add entry again: %v", err)
	}
	if updated {
		t.Fatalf("expected duplicate entry to be skipped")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if string(data) != "node_modules\n.shici/history.*\n" {
		t.Fatalf("unexpected .gitignore %q", string(data))
	}
}

// TestGitignoreEntryOutsideRoot verifies paths outside the repo are rejected.
func TestGitignoreEntryOutsideRoot(t *testing.T) {
	root := t.TempDir()
	if _, err := gitignoreEntry(root, filepath.Join(filepath.Dir(root), "elsewhere")); err == nil {
		t.Fatalf("expected error for path outside root")
	}
	if _, err := gitignoreEntry(root, ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestValidateReportsConfigIssues verifies config problems fail validation.
func TestValidateReportsConfigIssues(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), "version: 2\nquiz:\n  questions: -1\n")

	code, out, errOut := run(t, "", "validate", "--spec", specPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if out != "" {
		t.Fatalf("expected no stdout output, got %q", out)
	}
	if !strings.Contains(errOut, "Validation failed") || !strings.Contains(errOut, "version") {
		t.Fatalf("expected version issue, got %q", errOut)
	}
}

// TestValidateChecksCorpus verifies the corpus is loaded and counted.
func TestValidateChecksCorpus(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "poems.json")
	data := `[{"名字":"静夜思","作者":"李白","朝代":"唐","content_1":"床前明月光","content_2":"疑是地上霜"},
{"名字":"残句","content_1":"孤句"}]`
	if err := os.WriteFile(corpusPath, []byte(data), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	specPath := writeSpec(t, dir, "version: 1\ncorpus:\n  path: poems.json\n")

	code, out, errOut := run(t, "", "validate", "--spec", specPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "2 poems, 1 usable, 3 lines") {
		t.Fatalf("unexpected corpus summary %q", out)
	}
}

// TestValidateRejectsMalformedCorpus verifies a broken corpus override fails.
func TestValidateRejectsMalformedCorpus(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(corpusPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	specPath := writeSpec(t, dir, "version: 1\n")

	code, _, errOut := run(t, "", "validate", "--spec", specPath, "--corpus", corpusPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "load corpus") {
		t.Fatalf("expected corpus error, got %q", errOut)
	}
}

// TestValidateMissingConfig verifies validate needs a config file.
func TestValidateMissingConfig(t *testing.T) {
	code, _, errOut := run(t, "", "validate", "--spec", filepath.Join(t.TempDir(), "missing.yml"))
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "Validation failed") {
		t.Fatalf("expected failure message, got %q", errOut)
	}
}

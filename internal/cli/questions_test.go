package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestQuestionsJSON verifies the dump is reproducible for a seed and keeps its options well formed.
func TestQuestionsJSON(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), sqliteSpec)
	args := []string{"questions", "--spec", specPath, "--demo", "--count", "5", "--seed", "42"}

	code, first, errOut := run(t, "", args...)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	_, second, _ := run(t, "", args...)
	if first != second {
		t.Fatalf("expected identical output for the same seed")
	}

	var dump questionDump
	if err := json.Unmarshal([]byte(first), &dump); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dump.Source != "demo corpus" || dump.Requested != 5 || len(dump.Questions) != 5 {
		t.Fatalf("unexpected dump header %+v", dump)
	}
	for _, question := range dump.Questions {
		seen := map[string]bool{}
		for _, option := range question.Options {
			if seen[option] {
				t.Fatalf("duplicate option %q", option)
			}
			seen[option] = true
		}
		if !seen[question.Answer] || seen[question.Prompt] {
			t.Fatalf("bad options for %+v", question)
		}
	}
	if !strings.Contains(first, `"direction": "`) {
		t.Fatalf("expected direction names in json")
	}
}

// TestQuestionsYAML verifies the YAML format.
func TestQuestionsYAML(t *testing.T) {
	specPath := writeSpec(t, t.TempDir(), sqliteSpec)

	code, out, errOut := run(t, "", "questions", "--spec", specPath, "--demo", "--count", "2", "--seed", "3", "--format", "yaml")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	questions, ok := doc["questions"].([]any)
	if !ok || len(questions) != 2 {
		t.Fatalf("expected two questions, got %v", doc["questions"])
	}
}

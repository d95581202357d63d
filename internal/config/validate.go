package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"shici/internal/quiz"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// issueCollector accumulates validation issues.
type issueCollector struct {
	issues []Issue
}

// add records a new validation issue.
func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

// result returns a ValidationError when issues are present.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config and the files it references.
func Validate(cfg *Config) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	validateCorpus(cfg.Corpus, collector)
	validateQuiz(cfg.Quiz, collector)
	validateLookup(cfg.Lookup, collector)
	validateHistory(cfg.History, collector)

	switch cfg.UI.Mode {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		collector.add("ui.mode", fmt.Sprintf("unsupported mode %q (expected auto, live, or plain)", cfg.UI.Mode))
	}

	return collector.result()
}

func validateCorpus(corpusCfg CorpusConfig, collector *issueCollector) {
	if corpusCfg.SampleSize < 0 {
		collector.add("corpus.sample_size", "must be >= 0")
	}
	if corpusCfg.Path == "" {
		return
	}
	info, err := os.Stat(corpusCfg.Path)
	switch {
	case os.IsNotExist(err):
		collector.add("corpus.path", fmt.Sprintf("file %q does not exist", corpusCfg.Path))
	case err != nil:
		collector.add("corpus.path", fmt.Sprintf("stat %q: %v", corpusCfg.Path, err))
	case info.IsDir():
		collector.add("corpus.path", fmt.Sprintf("%q is a directory", corpusCfg.Path))
	}
}

func validateQuiz(quizCfg QuizConfig, collector *issueCollector) {
	positive := []struct {
		field string
		value int
	}{
		{"quiz.questions", quizCfg.Questions},
		{"quiz.max_attempts", quizCfg.MaxAttempts},
		{"quiz.distractor_attempts", quizCfg.DistractorAttempts},
	}
	for _, entry := range positive {
		if entry.value <= 0 {
			collector.add(entry.field, "must be > 0")
		}
	}
	if quizCfg.Distractors <= 0 || quizCfg.Distractors > quiz.MaxDistractors {
		collector.add("quiz.distractors", fmt.Sprintf("must be between 1 and %d", quiz.MaxDistractors))
	}
}

func validateLookup(lookupCfg LookupConfig, collector *issueCollector) {
	if lookupCfg.Timeout < 0 {
		collector.add("lookup.timeout", "must be >= 0")
	}
	parsed, err := url.Parse(lookupCfg.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		collector.add("lookup.url", fmt.Sprintf("invalid http(s) URL %q", lookupCfg.URL))
	}
}

func validateHistory(historyCfg HistoryConfig, collector *issueCollector) {
	switch historyCfg.Driver {
	case DriverDuckDB, DriverSQLite:
	case DriverPostgres:
		if historyCfg.DSN == "" {
			collector.add("history.dsn", "is required for the postgres driver")
		}
	default:
		collector.add("history.driver", fmt.Sprintf("unsupported driver %q (expected duckdb, sqlite, or postgres)", historyCfg.Driver))
	}
}

package config

import (
	"path/filepath"
	"strings"

	"shici/internal/corpus"
	"shici/internal/netinfo"
	"shici/internal/quiz"
)

// History drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// UI modes.
const (
	UIModeAuto  = "auto"
	UIModeLive  = "live"
	UIModePlain = "plain"
)

// Normalize fills defaults and anchors relative paths at root.
func Normalize(cfg *Config, root string) {
	cfg.Corpus.Path = resolvePath(root, strings.TrimSpace(cfg.Corpus.Path))
	if cfg.Corpus.SampleSize == 0 {
		cfg.Corpus.SampleSize = corpus.DefaultSampleSize
	}

	defaults := quiz.DefaultOptions()
	if cfg.Quiz.Questions == 0 {
		cfg.Quiz.Questions = defaults.Questions
	}
	if cfg.Quiz.MaxAttempts == 0 {
		cfg.Quiz.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.Quiz.Distractors == 0 {
		cfg.Quiz.Distractors = defaults.Distractors
	}
	if cfg.Quiz.DistractorAttempts == 0 {
		cfg.Quiz.DistractorAttempts = defaults.DistractorAttempts
	}

	cfg.Lookup.URL = strings.TrimSpace(cfg.Lookup.URL)
	if cfg.Lookup.URL == "" {
		cfg.Lookup.URL = netinfo.DefaultURL
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = netinfo.DefaultTimeout
	}

	cfg.History.Driver = strings.ToLower(strings.TrimSpace(cfg.History.Driver))
	if cfg.History.Driver == "" {
		cfg.History.Driver = DriverDuckDB
	}
	cfg.History.DSN = strings.TrimSpace(cfg.History.DSN)
	switch cfg.History.Driver {
	case DriverDuckDB, DriverSQLite:
		if cfg.History.DSN == "" {
			cfg.History.DSN = defaultHistoryFile(cfg.History.Driver)
		}
		cfg.History.DSN = resolvePath(root, cfg.History.DSN)
	}

	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeAuto
	}
}

// QuizOptions converts the quiz section into generator options.
func (c Config) QuizOptions() quiz.Options {
	return quiz.Options{
		Questions:          c.Quiz.Questions,
		MaxAttempts:        c.Quiz.MaxAttempts,
		Distractors:        c.Quiz.Distractors,
		DistractorAttempts: c.Quiz.DistractorAttempts,
	}
}

func defaultHistoryFile(driver string) string {
	name := "history.duckdb"
	if driver == DriverSQLite {
		name = "history.db"
	}
	return filepath.Join(ConfigDirName, name)
}

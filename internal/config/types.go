package config

import "time"

// Config is the top-level .shici/config.yml document.
type Config struct {
	Version int           `yaml:"version"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Quiz    QuizConfig    `yaml:"quiz"`
	Lookup  LookupConfig  `yaml:"lookup"`
	History HistoryConfig `yaml:"history"`
	UI      UIConfig      `yaml:"ui"`
}

// CorpusConfig locates the poem corpus. An empty path selects the built-in demo corpus.
type CorpusConfig struct {
	Path       string `yaml:"path"`
	SampleSize int    `yaml:"sample_size"`
}

// QuizConfig tunes question generation.
type QuizConfig struct {
	Questions          int `yaml:"questions"`
	MaxAttempts        int `yaml:"max_attempts"`
	Distractors        int `yaml:"distractors"`
	DistractorAttempts int `yaml:"distractor_attempts"`
}

// LookupConfig controls the client address lookup.
type LookupConfig struct {
	Enabled *bool         `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// IsEnabled reports whether the lookup should run. Unset means enabled.
func (c LookupConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// HistoryConfig selects where finished results are recorded.
type HistoryConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// UIConfig controls terminal presentation.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

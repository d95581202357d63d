package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
corpus:
  # JSON array or YAML list of poems; leave empty for the built-in demo corpus.
  path: ""
  sample_size: 1000

quiz:
  questions: 30
  max_attempts: 3000
  distractors: 3
  distractor_attempts: 100

lookup:
  enabled: true
  url: "https://api.ipify.org?format=json"
  timeout: 3s

history:
  driver: "duckdb"
  dsn: ".shici/history.duckdb"

ui:
  mode: "auto"
  no_color: false
`

// Scaffold writes the default config file, refusing to overwrite one.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shici/internal/config"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadConfig loads the config named by specPath or discovered from CWD.
// Without an explicit path and without a config file the defaults rooted at
// CWD are used, so playing works before init.
func loadConfig(specPath string) (config.Config, string, error) {
	resolved, err := resolveSpecPath(specPath)
	if err != nil {
		if strings.TrimSpace(specPath) != "" || !errors.Is(err, config.ErrConfigNotFound) {
			return config.Config{}, "", err
		}
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return config.Config{}, "", fmt.Errorf("resolve working dir: %w", wdErr)
		}
		return config.Default(wd), "", nil
	}
	cfg, err := config.Load(resolved)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, resolved, nil
}

// absPath resolves a flag value against CWD, leaving empty values alone.
func absPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}

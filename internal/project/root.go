package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigNames: имена конфигурационных файлов в порядке приоритета.
var ConfigNames = []string{"bslint.toml", ".bslint.yaml", ".bslint.yml"}

// ErrNoConfig is returned when no configuration file exists where one is required.
var ErrNoConfig = errors.New("no bslint configuration found")

// FindConfig walks up from startDir to locate a configuration file.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate, found, err := configIn(dir)
		if err != nil {
			return "", false, err
		}
		if found {
			return candidate, true, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// configIn looks for a configuration file directly inside dir.
func configIn(dir string) (string, bool, error) {
	for _, name := range ConfigNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing the configuration file, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(configPath), true, nil
}

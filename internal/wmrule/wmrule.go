// Package wmrule idempotently inserts a window-placement rule into a
// window manager configuration file, so the terminal running the widget
// floats and stays visible.
package wmrule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// EnsureRule prepends the rule line to the config file unless an
// identical line already exists. Returns true when the file was
// modified. Running it twice leaves the file unchanged after the first
// run.
func EnsureRule(logger *zap.Logger, path, rule string) (bool, error) {
	rule = strings.TrimRight(rule, "\r\n")
	if strings.TrimSpace(rule) == "" {
		return false, fmt.Errorf("empty rule")
	}
	if strings.ContainsAny(rule, "\n") {
		return false, fmt.Errorf("rule must be a single line")
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read config: %w", err)
	}

	// Exact-line existence check
	for _, line := range strings.Split(string(data), "\n") {
		if line == rule {
			logger.Info("Rule already present, leaving config untouched",
				zap.String("path", path))
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	updated := append([]byte(rule+"\n"), data...)
	if err := writeAtomic(path, updated); err != nil {
		return false, err
	}

	logger.Info("Rule inserted",
		zap.String("path", path),
		zap.String("rule", rule))
	return true, nil
}

// writeAtomic writes via a temp file and rename so a crash can't leave
// a half-written config behind.
func writeAtomic(path string, data []byte) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}

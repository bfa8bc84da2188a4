package reporting

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPathManager implements path management functionality
type DefaultPathManager struct{}

// NewDefaultPathManager creates a new path manager
func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the output directory for a run, e.g.
// results/scan_2026 or results/backtest_2023.
func (p *DefaultPathManager) GetDefaultOutputDir(kind string, year int) string {
	if kind == "" {
		kind = "scan"
	}
	return filepath.Join("results", fmt.Sprintf("%s_%d", kind, year))
}

// EnsureDirectoryExists creates directory if it doesn't exist
func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// Package-level convenience function
func DefaultOutputDir(kind string, year int) string {
	manager := NewDefaultPathManager()
	return manager.GetDefaultOutputDir(kind, year)
}

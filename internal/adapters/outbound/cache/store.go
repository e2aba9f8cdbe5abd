package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/filelock"
	"github.com/unityconverters/samplereport/internal/domain"
)

const reportFile = "last-report.json"

// Store is a file-based implementation of domain.ReportCache holding the
// most recent full report.
type Store struct{}

var _ domain.ReportCache = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Load reads the cached report. Returns (nil, nil) if no run was cached.
func (s *Store) Load(stateDir string) (*domain.Report, error) {
	path := Path(stateDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &report, nil
}

// Save replaces the cached report, creating directories as needed.
func (s *Store) Save(stateDir string, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return filelock.AtomicWrite(Path(stateDir), data)
}

// Invalidate removes the cached report.
func (s *Store) Invalidate(stateDir string) error {
	if err := os.Remove(Path(stateDir)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the cache file location for a state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, "cache", reportFile)
}

package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/filelock"
	"github.com/unityconverters/samplereport/internal/domain"
)

const historyFile = "history/runs.json"

// FileHistory implements domain.RunHistory as a JSON array under the state
// directory. Appends are serialized with a lock file so concurrent runs do
// not drop entries.
type FileHistory struct{}

var _ domain.RunHistory = (*FileHistory)(nil)

func New() *FileHistory {
	return &FileHistory{}
}

func (h *FileHistory) Save(stateDir string, entry domain.RunEntry) error {
	fp := Path(stateDir)
	return filelock.WithLock(fp+".lock", func() error {
		entries, err := h.Load(stateDir)
		if err != nil {
			return err
		}
		entries = append(entries, entry)

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		return filelock.AtomicWrite(fp, data)
	})
}

func (h *FileHistory) Load(stateDir string) ([]domain.RunEntry, error) {
	fp := Path(stateDir)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fp, err)
	}
	return entries, nil
}

// Clear removes every recorded run. A missing history is already clear.
func (h *FileHistory) Clear(stateDir string) error {
	fp := Path(stateDir)
	if _, err := os.Stat(fp); os.IsNotExist(err) {
		return nil
	}
	return filelock.WithLock(fp+".lock", func() error {
		if err := os.Remove(fp); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

// Path returns the history file location for a state directory.
func Path(stateDir string) string {
	return filepath.Join(stateDir, filepath.FromSlash(historyFile))
}

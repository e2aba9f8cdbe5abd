package scanner

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/unityconverters/samplereport/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileScanner implements domain.SampleLocator and domain.SourceScanner by
// walking the filesystem.
type FileScanner struct{}

var (
	_ domain.SampleLocator = (*FileScanner)(nil)
	_ domain.SourceScanner = (*FileScanner)(nil)
)

func New() *FileScanner {
	return &FileScanner{}
}

// Locate finds every directory holding cfg.MarkerFile under the search roots.
// The fallback root is only searched when the search roots together found
// nothing. Roots are deduplicated by resolved path, ignoring case.
func (s *FileScanner) Locate(projectRoot string, cfg domain.ProjectConfig) ([]domain.SampleRoot, error) {
	cfg = cfg.WithDefaults()

	absRoot, err := Canonical(projectRoot)
	if err != nil {
		return nil, err
	}

	found := make(map[string]bool)
	var roots []domain.SampleRoot

	for _, r := range cfg.SearchRoots {
		dirs, err := s.locateIn(filepath.Join(absRoot, filepath.FromSlash(r)), cfg, found)
		if err != nil {
			return nil, err
		}
		roots = append(roots, toSampleRoots(absRoot, dirs)...)
	}

	if len(found) == 0 && cfg.FallbackRoot != "" {
		dirs, err := s.locateIn(filepath.Join(absRoot, filepath.FromSlash(cfg.FallbackRoot)), cfg, found)
		if err != nil {
			return nil, err
		}
		roots = append(roots, toSampleRoots(absRoot, dirs)...)
	}

	return roots, nil
}

func (s *FileScanner) locateIn(root string, cfg domain.ProjectConfig, found map[string]bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil // absent candidate directories are skipped
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && cfg.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(d.Name(), cfg.MarkerFile) {
			return nil
		}

		dir, err := Canonical(filepath.Dir(path))
		if err != nil {
			return err
		}
		key := strings.ToLower(dir)
		if found[key] {
			return nil
		}
		found[key] = true
		dirs = append(dirs, dir)
		return nil
	})
	return dirs, err
}

// ListSources returns every file under root whose extension matches,
// ignoring case, sorted case-insensitively by full path.
func (s *FileScanner) ListSources(root, extension string, excludeDirs []string) ([]string, error) {
	exclude := domain.ProjectConfig{ExcludeDirs: excludeDirs}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && exclude.IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	domain.SortPathsFold(files)
	return files, nil
}

// ReadSource reads a source file as text. A leading UTF-8 byte order mark is
// dropped so it never counts as content.
func (s *FileScanner) ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// Canonical returns the absolute, symlink-resolved form of path.
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

// RelativeSlash returns target relative to base in forward slashes. It falls
// back to the target itself when no relative path exists.
func RelativeSlash(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

func toSampleRoots(projectRoot string, dirs []string) []domain.SampleRoot {
	roots := make([]domain.SampleRoot, 0, len(dirs))
	for _, d := range dirs {
		roots = append(roots, domain.SampleRoot{
			Path:         d,
			RelativePath: RelativeSlash(projectRoot, d),
		})
	}
	return roots
}

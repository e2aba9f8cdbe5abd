package application

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/unityconverters/samplereport/internal/domain"
	"github.com/unityconverters/samplereport/internal/domain/check"
)

// Logger is the subset of the console logger the services use.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Tracef(string, ...any) {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}

// ReportService orchestrates the report pipeline:
// discover sample roots → evaluate scripts → aggregate → render → write.
type ReportService struct {
	locator   domain.SampleLocator
	sources   domain.SourceScanner
	renderer  domain.ReportRenderer
	writer    domain.ReportWriter
	git       domain.GitInfo
	log       Logger
	now       func() time.Time
	generator string
}

type Option func(*ReportService)

func WithLogger(l Logger) Option {
	return func(s *ReportService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithGitInfo stamps reports with the HEAD commit when the project is in a
// git repository.
func WithGitInfo(g domain.GitInfo) Option {
	return func(s *ReportService) { s.git = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *ReportService) { s.now = now }
}

// WithGenerator sets the tool name and version printed in the report header.
func WithGenerator(name string) Option {
	return func(s *ReportService) { s.generator = name }
}

func NewReportService(
	locator domain.SampleLocator,
	sources domain.SourceScanner,
	renderer domain.ReportRenderer,
	writer domain.ReportWriter,
	opts ...Option,
) *ReportService {
	s := &ReportService{
		locator:  locator,
		sources:  sources,
		renderer: renderer,
		writer:   writer,
		log:      nopLogger{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSamples returns the sample roots a run would evaluate, sorted. Roots
// declared in cfg.Samples replace discovery and are returned even when they
// do not exist.
func (s *ReportService) ListSamples(projectRoot string, cfg domain.ProjectConfig) ([]domain.SampleRoot, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	absRoot, err := resolveRoot(projectRoot)
	if err != nil {
		return nil, err
	}

	var roots []domain.SampleRoot
	if len(cfg.Samples) > 0 {
		roots = declaredRoots(absRoot, cfg.Samples)
		s.log.Debugf("using %d declared sample folder(s)", len(roots))
	} else {
		roots, err = s.locator.Locate(absRoot, cfg)
		if err != nil {
			return nil, fmt.Errorf("discovering sample folders: %w", err)
		}
	}

	if len(roots) == 0 {
		return nil, fmt.Errorf("%w under %s (marker %s)", domain.ErrNoSampleRoots, absRoot, cfg.MarkerFile)
	}
	domain.SortSampleRoots(roots)
	return roots, nil
}

// Run executes the whole pipeline and writes the markdown report. The
// returned report carries the verdict; a failing verdict is not an error.
func (s *ReportService) Run(projectRoot string, cfg domain.ProjectConfig) (*domain.Report, error) {
	cfg = cfg.WithDefaults()

	roots, err := s.ListSamples(projectRoot, cfg)
	if err != nil {
		return nil, err
	}
	s.log.Infof("found %d sample folder(s)", len(roots))

	report, err := s.Evaluate(projectRoot, cfg, roots)
	if err != nil {
		return nil, err
	}

	data, err := s.renderer.Render(report)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	target := cfg.ResolveReportPath(report.ProjectRoot)
	if err := s.writer.Write(target, data); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	report.ReportPath = displayPath(report.ProjectRoot, target)
	s.log.Infof("report written to %s", report.ReportPath)

	return report, nil
}

// Validate runs the pipeline and returns its verdict: nil when no required
// check failed, an error wrapping domain.ErrRequiredChecksFailed otherwise.
func (s *ReportService) Validate(projectRoot string, cfg domain.ProjectConfig) error {
	report, err := s.Run(projectRoot, cfg)
	if err != nil {
		return err
	}
	return report.Verdict()
}

// Evaluate checks the scripts of the given roots and aggregates the results
// without discovering or writing anything.
func (s *ReportService) Evaluate(projectRoot string, cfg domain.ProjectConfig, roots []domain.SampleRoot) (*domain.Report, error) {
	cfg = cfg.WithDefaults()

	absRoot, err := resolveRoot(projectRoot)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		GeneratedAt:     s.now().UTC(),
		Generator:       s.generator,
		ProjectRoot:     absRoot,
		SourceExtension: cfg.SourceExtension,
	}
	if s.git != nil && s.git.IsGitRepo(absRoot) {
		if hash, err := s.git.CommitHash(absRoot); err == nil {
			report.CommitHash = hash
		} else {
			s.log.Debugf("no commit hash: %v", err)
		}
	}

	for _, root := range roots {
		sample, err := s.evaluateSample(root, cfg, &report.Summary)
		if err != nil {
			return nil, err
		}
		report.Summary.AddSample(sample)
		report.Samples = append(report.Samples, sample)
	}

	return report, nil
}

func (s *ReportService) evaluateSample(root domain.SampleRoot, cfg domain.ProjectConfig, summary *domain.Summary) (domain.SampleReport, error) {
	sample := domain.SampleReport{SamplePath: root.RelativePath}

	files, err := s.sources.ListSources(root.Path, cfg.SourceExtension, cfg.ExcludeDirs)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warnf("sample folder not found: %s", root.RelativePath)
		sample.Errors = append(sample.Errors, "Sample folder not found: "+root.RelativePath)
		summary.AddSampleError()
		return sample, nil
	}
	if err != nil {
		return sample, fmt.Errorf("listing %s: %w", root.RelativePath, err)
	}

	if len(files) == 0 {
		s.log.Warnf("no %s files in %s", cfg.SourceExtension, root.RelativePath)
		sample.Errors = append(sample.Errors,
			fmt.Sprintf("No %s files found in sample folder: %s", cfg.SourceExtension, root.RelativePath))
		summary.AddSampleError()
		return sample, nil
	}

	scripts := make([]domain.ScriptReport, 0, len(files))
	for _, f := range files {
		s.log.Tracef("checking %s", f)
		content, err := s.sources.ReadSource(f)
		if err != nil {
			return sample, fmt.Errorf("reading %s: %w", f, err)
		}
		sc := check.Evaluate(root.Path, f, content, cfg.SourceExtension)
		if !sc.Passed {
			s.log.Debugf("FAIL %s/%s", root.RelativePath, sc.FileName)
		}
		summary.AddScript(sc)
		scripts = append(scripts, sc)
	}

	sample.Folders = domain.GroupByFolder(scripts)
	s.log.Debugf("%s: %d script(s) in %d folder(s)", root.RelativePath, len(scripts), len(sample.Folders))
	return sample, nil
}

func resolveRoot(projectRoot string) (string, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

func declaredRoots(absRoot string, samples []string) []domain.SampleRoot {
	roots := make([]domain.SampleRoot, 0, len(samples))
	seen := make(map[string]bool)
	for _, p := range samples {
		path := p
		if !filepath.IsAbs(path) {
			path = filepath.Join(absRoot, filepath.FromSlash(p))
		}
		path = filepath.Clean(path)
		key := strings.ToLower(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		roots = append(roots, domain.SampleRoot{Path: path, RelativePath: displayPath(absRoot, path)})
	}
	return roots
}

// displayPath returns target relative to root in forward slashes, or the
// absolute path when target lies outside root.
func displayPath(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

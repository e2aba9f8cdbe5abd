package domain

// SampleLocator discovers sample roots under a project root.
type SampleLocator interface {
	Locate(projectRoot string, cfg ProjectConfig) ([]SampleRoot, error)
}

// SourceScanner enumerates and reads the source files of a sample root.
type SourceScanner interface {
	ListSources(root, extension string, excludeDirs []string) ([]string, error)
	ReadSource(path string) (string, error)
}

// ReportRenderer serializes an aggregated report.
type ReportRenderer interface {
	Render(report *Report) ([]byte, error)
}

// ReportWriter persists rendered report bytes.
type ReportWriter interface {
	Write(path string, data []byte) error
}

// ConfigLoader loads the project configuration from a project root.
type ConfigLoader interface {
	Load(projectRoot string) (ProjectConfig, error)
}

// RunHistory persists past run summaries.
type RunHistory interface {
	Save(stateDir string, entry RunEntry) error
	Load(stateDir string) ([]RunEntry, error)
	Clear(stateDir string) error
}

// ReportCache keeps the last full report for later inspection.
type ReportCache interface {
	Save(stateDir string, report *Report) error
	Load(stateDir string) (*Report, error)
	Invalidate(stateDir string) error
}

// GitInfo provides version-control metadata for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

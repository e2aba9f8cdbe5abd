package domain

import (
	"fmt"
	"time"
)

// RootFolderLabel names the folder bucket for scripts that sit directly in a
// sample root.
const RootFolderLabel = "(root)"

// SampleRoot is a directory recognized as a sample by the marker file it holds.
type SampleRoot struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
}

// CheckResult is the outcome of one named textual check on one file.
type CheckResult struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
}

// ScriptReport summarizes the checks run on a single source file.
type ScriptReport struct {
	FileName string        `json:"file_name"`
	Folder   string        `json:"folder"`
	Passed   bool          `json:"passed"`
	Checks   []CheckResult `json:"checks"`
}

// NewScriptReport builds a ScriptReport whose Passed flag is the AND of all
// required checks. Optional checks never affect it.
func NewScriptReport(fileName, folder string, checks []CheckResult) ScriptReport {
	passed := true
	for _, c := range checks {
		if c.Required && !c.Passed {
			passed = false
			break
		}
	}
	return ScriptReport{
		FileName: fileName,
		Folder:   folder,
		Passed:   passed,
		Checks:   checks,
	}
}

type FolderReport struct {
	Folder  string         `json:"folder"`
	Scripts []ScriptReport `json:"scripts"`
}

// SampleReport is the rollup for one sample root. A sample with Errors has
// no folders.
type SampleReport struct {
	SamplePath string         `json:"sample_path"`
	Folders    []FolderReport `json:"folders"`
	Errors     []string       `json:"errors,omitempty"`
}

// Summary holds the run-wide counters.
type Summary struct {
	SampleFolders    int `json:"sample_folders"`
	Folders          int `json:"folders"`
	Scripts          int `json:"scripts"`
	Passed           int `json:"passed"`
	Failed           int `json:"failed"`
	RequiredFailures int `json:"required_failures"`
}

// Report is the aggregated result of one run.
type Report struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	Generator       string         `json:"generator"`
	CommitHash      string         `json:"commit_hash,omitempty"`
	ProjectRoot     string         `json:"project_root"`
	ReportPath      string         `json:"report_path,omitempty"`
	SourceExtension string         `json:"source_extension"`
	Summary         Summary        `json:"summary"`
	Samples         []SampleReport `json:"samples"`
}

// Passed reports whether no required check failed anywhere in the run.
func (r *Report) Passed() bool { return r.Summary.RequiredFailures == 0 }

// Verdict returns nil when the run passed, or an error wrapping
// ErrRequiredChecksFailed otherwise. Optional check failures are ignored.
func (r *Report) Verdict() error {
	if r.Passed() {
		return nil
	}
	if r.ReportPath != "" {
		return fmt.Errorf("%w: %d required failure(s), see report: %s",
			ErrRequiredChecksFailed, r.Summary.RequiredFailures, r.ReportPath)
	}
	return fmt.Errorf("%w: %d required failure(s)", ErrRequiredChecksFailed, r.Summary.RequiredFailures)
}

// FailedScripts returns every failing script paired with its sample path, in
// report order.
func (r *Report) FailedScripts() []FailedScript {
	var out []FailedScript
	for _, s := range r.Samples {
		for _, f := range s.Folders {
			for _, sc := range f.Scripts {
				if !sc.Passed {
					out = append(out, FailedScript{Sample: s.SamplePath, Script: sc})
				}
			}
		}
	}
	return out
}

type FailedScript struct {
	Sample string       `json:"sample"`
	Script ScriptReport `json:"script"`
}

// ReportDigest is what a downstream consumer can recover from a rendered
// markdown report.
type ReportDigest struct {
	Title   string         `json:"title"`
	Summary Summary        `json:"summary"`
	Samples []SampleDigest `json:"samples"`
}

type SampleDigest struct {
	SamplePath string         `json:"sample_path"`
	Errors     []string       `json:"errors,omitempty"`
	Scripts    []ScriptDigest `json:"scripts,omitempty"`
}

type ScriptDigest struct {
	Folder   string `json:"folder"`
	FileName string `json:"file_name"`
	Passed   bool   `json:"passed"`
	Checks   string `json:"checks"`
}

// RunEntry is one line of the run history.
type RunEntry struct {
	ID               string `json:"id"`
	Timestamp        string `json:"timestamp"`
	CommitHash       string `json:"commit_hash,omitempty"`
	SampleFolders    int    `json:"sample_folders"`
	Scripts          int    `json:"scripts"`
	Passed           int    `json:"passed"`
	Failed           int    `json:"failed"`
	RequiredFailures int    `json:"required_failures"`
	Verdict          string `json:"verdict"`
}

const (
	VerdictPass = "PASS"
	VerdictFail = "FAIL"
)

// VerdictLabel renders a pass flag the way reports print it.
func VerdictLabel(passed bool) string {
	if passed {
		return VerdictPass
	}
	return VerdictFail
}

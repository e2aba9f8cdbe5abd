package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unityconverters/samplereport/internal/domain"
)

// RunRecorder keeps the state directory up to date after a run: one history
// entry per run and a copy of the latest full report.
type RunRecorder struct {
	history domain.RunHistory
	cache   domain.ReportCache
	newID   func() string
}

func NewRunRecorder(history domain.RunHistory, cache domain.ReportCache) *RunRecorder {
	return &RunRecorder{
		history: history,
		cache:   cache,
		newID:   uuid.NewString,
	}
}

// Entry summarizes a report as a history line.
func (r *RunRecorder) Entry(report *domain.Report) domain.RunEntry {
	s := report.Summary
	return domain.RunEntry{
		ID:               r.newID(),
		Timestamp:        report.GeneratedAt.UTC().Format(time.RFC3339),
		CommitHash:       report.CommitHash,
		SampleFolders:    s.SampleFolders,
		Scripts:          s.Scripts,
		Passed:           s.Passed,
		Failed:           s.Failed,
		RequiredFailures: s.RequiredFailures,
		Verdict:          domain.VerdictLabel(report.Passed()),
	}
}

// Record appends the run to the history and replaces the cached report.
// Both writes are attempted; their errors are joined.
func (r *RunRecorder) Record(stateDir string, report *domain.Report) (domain.RunEntry, error) {
	entry := r.Entry(report)

	var errs []error
	if err := r.history.Save(stateDir, entry); err != nil {
		errs = append(errs, fmt.Errorf("saving history: %w", err))
	}
	if err := r.cache.Save(stateDir, report); err != nil {
		errs = append(errs, fmt.Errorf("caching report: %w", err))
	}
	return entry, errors.Join(errs...)
}

// History returns past runs, oldest first, keeping at most limit entries
// when limit is positive.
func (r *RunRecorder) History(stateDir string, limit int) ([]domain.RunEntry, error) {
	entries, err := r.history.Load(stateDir)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// LastReport returns the cached report of the latest run, or nil.
func (r *RunRecorder) LastReport(stateDir string) (*domain.Report, error) {
	return r.cache.Load(stateDir)
}

// Clear forgets every recorded run and the cached report. Both removals are
// attempted; their errors are joined.
func (r *RunRecorder) Clear(stateDir string) error {
	var errs []error
	if err := r.history.Clear(stateDir); err != nil {
		errs = append(errs, fmt.Errorf("clearing history: %w", err))
	}
	if err := r.cache.Invalidate(stateDir); err != nil {
		errs = append(errs, fmt.Errorf("invalidating cached report: %w", err))
	}
	return errors.Join(errs...)
}

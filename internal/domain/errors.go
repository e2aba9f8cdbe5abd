package domain

import "errors"

var (
	// ErrNoSampleRoots is returned when discovery finds no sample folder at all.
	ErrNoSampleRoots = errors.New("no sample folders found")

	// ErrRequiredChecksFailed is wrapped by Report.Verdict when at least one
	// required check failed.
	ErrRequiredChecksFailed = errors.New("samples content checks failed")
)

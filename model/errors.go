package model

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is in handlers.
var (
	// ErrNoteNotFound covers both a truly missing note and one owned by a
	// different user; the two cases are deliberately indistinguishable.
	ErrNoteNotFound = errors.New("note not found")

	// ErrLogNotFound follows the same owner-scoping rule as ErrNoteNotFound.
	ErrLogNotFound = errors.New("analysis log not found")

	// ErrNoNotes means analysis was requested with an empty eligible batch.
	ErrNoNotes = errors.New("no notes available for analysis")
)

// ValidationError reports a malformed or missing input field. It is always
// raised before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AnalyzerError wraps a failure from the external resource analyzer:
// transport errors, API errors, timeouts, or unusable output.
type AnalyzerError struct {
	Op  string
	Err error
}

func (e *AnalyzerError) Error() string {
	return fmt.Sprintf("analyzer %s: %v", e.Op, e.Err)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Err
}

package core

import (
	"fmt"
	"strconv"

	"go.skia.org/multisection/go/skerr"
)

// ConfigurationError covers missing directories, absent target files, or an
// ambiguous/empty commit range. Raised during Prepare.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

func newConfigurationError(format string, args ...interface{}) error {
	return skerr.Wrap(&ConfigurationError{Message: fmt.Sprintf(format, args...)})
}

// ProbeError wraps a failure from the Runner port: non-zero exit, missing
// artifact, or unreadable output. Fatal; aborts the session.
type ProbeError struct {
	Idx    int
	Commit CommitId
	Cause  error
}

func (e *ProbeError) Error() string {
	return "probe failed at index " + strconv.Itoa(e.Idx) + " (" + string(e.Commit) + "): " + e.Cause.Error()
}

func (e *ProbeError) Unwrap() error { return e.Cause }

func newProbeError(idx int, commit CommitId, cause error) error {
	return skerr.Wrap(&ProbeError{Idx: idx, Commit: commit, Cause: cause})
}

// InvariantViolation signals a bug in the driver itself, never bad user
// input: the sequence validator produced a result inconsistent with the
// driver's own bookkeeping, or the per-target probe counter exceeded N.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Message }

func newInvariantViolation(format string, args ...interface{}) error {
	return skerr.Wrap(&InvariantViolation{Message: fmt.Sprintf(format, args...)})
}

// UsageError covers calling the driver's methods out of order: multisecting
// before Prepare, or inspecting transitions before completion.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func newUsageError(message string) error {
	return skerr.Wrap(&UsageError{Message: message})
}

// Package errors holds the error values shared by calgrid packages: sentinel
// errors per subsystem, the domain error types LayoutError and SourceError,
// the semantic types NotFoundError and ValidationError, and helpers that
// classify an error by severity or fatality.
//
// Layout errors come in two flavours. Fatal errors are programmer errors
// (arranging before initialization, unsupported scroll primitives,
// unrecognized date tags, broken container tables); they abort the current
// layout pass and are never retried. Everything else is tolerated: lookups
// that miss are skipped and offsets are clamped.
//
//	err := errors.NewSourceError("parse failed", cause).WithPath("work.yaml").WithEntry(3)
//	if errors.IsFatal(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Standard library helpers, so callers only need this package.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Layout engine errors. ErrNotInitialized, ErrUnsupportedScroll,
// ErrInvalidDateTag and ErrInvariantViolated are fatal.
var (
	ErrNotInitialized    = New("layout panel not initialized")
	ErrUnsupportedScroll = New("scroll operation not supported")
	ErrInvalidDateTag    = New("invalid date tag type")
	ErrContainerNotFound = New("container not found")
	ErrNotAnItem         = New("container is not a realized item")
	ErrInvariantViolated = New("container invariant violated")
)

// Agenda and holiday source errors.
var (
	ErrSourceNotFound = New("source file not found")
	ErrSourceInvalid  = New("source file invalid")
	ErrEntryInvalid   = New("agenda entry invalid")
)

var (
	ErrCanceled     = New("operation canceled")
	ErrInvalidInput = New("invalid input")
)

var fatalSentinels = []error{ErrNotInitialized, ErrUnsupportedScroll, ErrInvalidDateTag, ErrInvariantViolated}

// IsFatal reports whether err, wrapped or not, is one of the fatal layout
// errors.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	for _, s := range fatalSentinels {
		if Is(err, s) {
			return true
		}
	}
	return false
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

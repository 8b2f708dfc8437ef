package errors

import (
	"fmt"
	"strings"
)

// detail is embedded by every error type of this package.
type detail struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (d *detail) Unwrap() error      { return d.cause }
func (d *detail) Severity() Severity { return d.severity }
func (d *detail) IsUserFacing() bool { return d.userFacing }

// describe renders "kind [k=v, ...]: message: cause", leaving out the empty
// parts.
func (d *detail) describe(kind string, context []string) string {
	var b strings.Builder
	b.WriteString(kind)
	if len(context) > 0 {
		b.WriteString(" [" + strings.Join(context, ", ") + "]")
	}
	b.WriteString(": " + d.message)
	if d.cause != nil {
		b.WriteString(": " + d.cause.Error())
	}
	return b.String()
}

func field(key string, value any) string { return fmt.Sprintf("%s=%v", key, value) }

// LayoutError is returned by the layout engine.
//
//	errors.NewLayoutError("measure", errors.ErrNotInitialized)
//	// layout error [op=measure]: layout pass failed: layout panel not initialized
type LayoutError struct {
	detail
	Op   string
	Date string
	// Container is -1 when no container is involved.
	Container int
}

// NewLayoutError returns a LayoutError for op. It is critical when cause is
// a fatal sentinel.
func NewLayoutError(op string, cause error) *LayoutError {
	sev := SeverityError
	if IsFatal(cause) {
		sev = SeverityCritical
	}
	return &LayoutError{
		detail:    detail{message: "layout pass failed", cause: cause, severity: sev},
		Op:        op,
		Container: -1,
	}
}

func (e *LayoutError) WithDate(date string) *LayoutError {
	e.Date = date
	return e
}

func (e *LayoutError) WithContainer(c int) *LayoutError {
	e.Container = c
	return e
}

func (e *LayoutError) WithMessage(msg string) *LayoutError {
	e.message = msg
	return e
}

func (e *LayoutError) Error() string {
	var ctx []string
	if e.Op != "" {
		ctx = append(ctx, field("op", e.Op))
	}
	if e.Date != "" {
		ctx = append(ctx, field("date", e.Date))
	}
	if e.Container >= 0 {
		ctx = append(ctx, field("container", e.Container))
	}
	return e.describe("layout error", ctx)
}

// Is matches any *LayoutError target; sentinels are found through Unwrap.
func (e *LayoutError) Is(target error) bool {
	_, ok := target.(*LayoutError)
	return ok
}

// SourceError is returned while reading agenda or holiday files. Its message
// is meant for the user.
type SourceError struct {
	detail
	Path string
	// Entry is the zero-based entry index, or -1.
	Entry int
}

func NewSourceError(message string, cause error) *SourceError {
	return &SourceError{
		detail: detail{message: message, cause: cause, severity: SeverityError, userFacing: true},
		Entry:  -1,
	}
}

func (e *SourceError) WithPath(path string) *SourceError {
	e.Path = path
	return e
}

func (e *SourceError) WithEntry(idx int) *SourceError {
	e.Entry = idx
	return e
}

func (e *SourceError) WithSeverity(s Severity) *SourceError {
	e.severity = s
	return e
}

func (e *SourceError) Error() string {
	var ctx []string
	if e.Path != "" {
		ctx = append(ctx, field("path", e.Path))
	}
	if e.Entry >= 0 {
		ctx = append(ctx, field("entry", e.Entry))
	}
	return e.describe("source error", ctx)
}

func (e *SourceError) Is(target error) bool {
	_, ok := target.(*SourceError)
	return ok
}

// NotFoundError reports a missing resource, e.g. "entry '7' not found".
type NotFoundError struct {
	detail
	ResourceType string
	ResourceID   string
}

func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		detail: detail{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

func (e *NotFoundError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports invalid input. It matches ErrInvalidInput.
type ValidationError struct {
	detail
	Field string
	Value any
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		detail: detail{message: message, severity: SeverityWarning, userFacing: true},
	}
}

func (e *ValidationError) WithField(name string) *ValidationError {
	e.Field = name
	return e
}

func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Error() string {
	var ctx []string
	if e.Field != "" {
		ctx = append(ctx, field("field", e.Field))
	}
	if e.Value != nil {
		ctx = append(ctx, field("value", e.Value))
	}
	return e.describe("validation error", ctx)
}

func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

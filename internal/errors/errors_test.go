package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityDebug, "debug"},
		{SeverityInfo, "info"},
		{SeverityWarning, "warning"},
		{SeverityError, "error"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewLayoutError(t *testing.T) {
	tests := []struct {
		name         string
		cause        error
		wantSeverity Severity
	}{
		{"not initialized is critical", ErrNotInitialized, SeverityCritical},
		{"unsupported scroll is critical", ErrUnsupportedScroll, SeverityCritical},
		{"invalid tag is critical", ErrInvalidDateTag, SeverityCritical},
		{"wrapped fatal is critical", fmt.Errorf("tag: %w", ErrInvalidDateTag), SeverityCritical},
		{"missing container is an error", ErrContainerNotFound, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewLayoutError("measure", tt.cause)
			if err.Severity() != tt.wantSeverity {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.wantSeverity)
			}
			if err.IsUserFacing() {
				t.Error("IsUserFacing() = true, want false")
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("errors.Is(err, %v) = false, want true", tt.cause)
			}
		})
	}
}

func TestLayoutError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *LayoutError
		want string
	}{
		{
			name: "op only",
			err:  NewLayoutError("arrange", ErrNotInitialized),
			want: "layout error [op=arrange]: layout pass failed: layout panel not initialized",
		},
		{
			name: "with date and container",
			err:  NewLayoutError("set_day", ErrInvalidDateTag).WithDate("2024-02-01").WithContainer(7),
			want: "layout error [op=set_day, date=2024-02-01, container=7]: layout pass failed: invalid date tag type",
		},
		{
			name: "custom message",
			err:  NewLayoutError("scroll", ErrUnsupportedScroll).WithMessage("line left"),
			want: "layout error [op=scroll]: line left: scroll operation not supported",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutError_IsType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewLayoutError("measure", ErrContainerNotFound))

	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatal("errors.As should find the LayoutError")
	}
	if layoutErr.Op != "measure" {
		t.Errorf("Op = %q, want %q", layoutErr.Op, "measure")
	}
	if !errors.Is(err, &LayoutError{}) {
		t.Error("errors.Is should match any *LayoutError target")
	}
}

func TestSourceError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SourceError
		want string
	}{
		{
			name: "no context",
			err:  NewSourceError("cannot read", nil),
			want: "source error: cannot read",
		},
		{
			name: "path and entry",
			err:  NewSourceError("bad entry", ErrEntryInvalid).WithPath("work.yaml").WithEntry(2),
			want: "source error [path=work.yaml, entry=2]: bad entry: agenda entry invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceError_WithSeverity(t *testing.T) {
	err := NewSourceError("skipped", nil).WithSeverity(SeverityWarning)
	if GetSeverity(err) != SeverityWarning {
		t.Errorf("GetSeverity() = %v, want %v", GetSeverity(err), SeverityWarning)
	}
	if !IsUserFacing(err) {
		t.Error("source errors should be user facing")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("container", "42")
	if got, want := err.Error(), "container '42' not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	withCause := NewNotFoundError("date", "2024-01-01").WithCause(ErrContainerNotFound)
	if !errors.Is(withCause, ErrContainerNotFound) {
		t.Error("NotFoundError should unwrap to its cause")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("end before start").WithField("end").WithValue("2024-01-01")
	want := "validation error [field=end, value=2024-01-01]: end before start"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not initialized", ErrNotInitialized, true},
		{"layout wrapper", NewLayoutError("arrange", ErrNotInitialized), true},
		{"fmt wrapped", fmt.Errorf("x: %w", ErrUnsupportedScroll), true},
		{"invariant", ErrInvariantViolated, true},
		{"missing container", ErrContainerNotFound, false},
		{"source error", NewSourceError("x", ErrSourceInvalid), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetSeverity(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"nil", nil, SeverityDebug},
		{"plain", New("boom"), SeverityError},
		{"bare fatal sentinel", ErrInvalidDateTag, SeverityCritical},
		{"validation", NewValidationError("x"), SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSeverity(tt.err); got != tt.want {
				t.Errorf("GetSeverity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", New("boom"), false},
		{"layout", NewLayoutError("arrange", ErrNotInitialized), false},
		{"source", NewSourceError("x", ErrSourceInvalid), true},
		{"wrapped validation", fmt.Errorf("config: %w", NewValidationError("x")), true},
		{"not found", NewNotFoundError("entry", "3"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	err := Wrapf(ErrSourceNotFound, "loading %s", "a.yaml")
	if got, want := err.Error(), "loading a.yaml: source file not found"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !Is(err, ErrSourceNotFound) {
		t.Error("wrapped error should match its sentinel")
	}
}

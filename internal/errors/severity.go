package errors

// Severity ranks how serious an error is.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	// SeverityCritical breaks a layout pass.
	SeverityCritical
)

var severityNames = [...]string{"debug", "info", "warning", "error", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// classified is implemented by every error type of this package.
type classified interface {
	error
	Severity() Severity
	IsUserFacing() bool
}

// IsUserFacing reports whether the message of err can be shown to users as
// is. Only errors of this package qualify.
func IsUserFacing(err error) bool {
	var c classified
	return err != nil && As(err, &c) && c.IsUserFacing()
}

// GetSeverity returns the severity of the outermost error of this package in
// err's chain. Foreign errors are SeverityError, or SeverityCritical when
// they wrap a fatal sentinel.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var c classified
	switch {
	case As(err, &c):
		return c.Severity()
	case IsFatal(err):
		return SeverityCritical
	default:
		return SeverityError
	}
}

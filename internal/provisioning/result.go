package provisioning

import "fmt"

// Warning is a recoverable outcome of a best-effort operation, such as a
// duplicate security-group rule or a failed elastic IP release. Warnings
// are logged and do not fail the step that produced them.
type Warning struct {
	Message string
	Err     error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %v", w.Message, w.Err)
	}
	return w.Message
}

// Result accumulates warnings from a step so callers can log and continue
// without exception-style control flow.
type Result struct {
	Warnings []Warning
}

// Warnf records a recoverable warning.
func (r *Result) Warnf(err error, format string, v ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Message: fmt.Sprintf(format, v...), Err: err})
}

// Merge appends the warnings from another result.
func (r *Result) Merge(other Result) {
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// LogTo emits every accumulated warning to the observer.
func (r *Result) LogTo(observer Observer, phase string) {
	for _, w := range r.Warnings {
		LogWarning(observer, phase, w.String())
	}
}

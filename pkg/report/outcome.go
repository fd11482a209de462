package report

import (
	"fmt"

	"digital.vasic.unittest/pkg/label"
)

// Line prefixes for each report kind.
const (
	TagPassed = "[PASSED]"
	TagFailed = "[FAILED]"
	TagError  = "[ERROR]"
)

// Kind classifies the outcome of one assertion.
type Kind int

const (
	// Passed means the predicate held or the comparison matched.
	Passed Kind = iota
	// Failed means a predicate returned false.
	Failed
	// Mismatch means a comparison did not hold.
	Mismatch
	// Error means the callable raised a fault with a description.
	Error
	// Unknown means the callable raised a fault with no
	// retrievable description.
	Unknown
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Mismatch:
		return "mismatch"
	case Error:
		return "error"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the transient result of one assertion call. It is
// rendered into exactly one report line and then dropped.
type Outcome struct {
	Kind  Kind
	Label label.Label

	// Expected and Actual are set for Mismatch.
	Expected any
	Actual   any

	// Fault is set for Error.
	Fault error
}

// Passed reports whether the outcome counts as a pass.
func (o Outcome) Passed() bool {
	return o.Kind == Passed
}

// Line renders the outcome in its report format.
func (o Outcome) Line() string {
	switch o.Kind {
	case Passed:
		return TagPassed + " " + o.Label.String()
	case Failed:
		return TagFailed + " " + o.Label.String() +
			" (Predicate returned false)"
	case Mismatch:
		return fmt.Sprintf(
			"%s %s | expected: %v | Got: %v",
			TagFailed, o.Label, o.Expected, o.Actual,
		)
	case Error:
		desc := "<nil>"
		if o.Fault != nil {
			desc = o.Fault.Error()
		}
		return TagError + " " + o.Label.String() +
			" threw exception: " + desc
	default:
		return TagError + " " + o.Label.String() +
			" threw unknown exception."
	}
}

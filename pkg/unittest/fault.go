package unittest

import (
	"errors"
	"fmt"

	"digital.vasic.unittest/pkg/report"
)

// Requirement violations. They are reported like faults, since a
// reflective call cannot be rejected before it is attempted.
var (
	ErrNotCallable   = errors.New("not a callable")
	ErrArgs          = errors.New("invalid arguments")
	ErrResult        = errors.New("unusable result")
	ErrNotComparable = errors.New("not comparable")
)

// ErrCompileTimeCheck matches every *CompileTimeError.
var ErrCompileTimeCheck = errors.New("compile-time test failed")

// CompileTimeError is the panic value of a failing
// CompileTimeAssert. Its message starts with
// "Compile-time test failed: ".
type CompileTimeError struct {
	Err error
}

func (e *CompileTimeError) Error() string {
	return "Compile-time test failed: " + e.Err.Error()
}

func (e *CompileTimeError) Unwrap() []error {
	return []error{ErrCompileTimeCheck, e.Err}
}

// Fault is a failure raised by a callable that carries a
// description: a returned error, or a panic with an error,
// fmt.Stringer, or string value.
type Fault struct {
	Err error
}

func (f *Fault) Error() string {
	return f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// UnknownFault is a panic whose value has no description.
type UnknownFault struct {
	Value any
}

func (f *UnknownFault) Error() string {
	return "unknown exception"
}

// recovered converts a recovered panic value into a fault.
func recovered(r any) error {
	switch v := r.(type) {
	case error:
		return &Fault{Err: v}
	case fmt.Stringer:
		return &Fault{Err: errors.New(v.String())}
	case string:
		return &Fault{Err: errors.New(v)}
	default:
		return &UnknownFault{Value: r}
	}
}

func classify(err error) report.Outcome {
	var unknown *UnknownFault
	if errors.As(err, &unknown) {
		return report.Outcome{Kind: report.Unknown}
	}
	return report.Outcome{Kind: report.Error, Fault: err}
}

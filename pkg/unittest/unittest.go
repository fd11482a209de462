// Package unittest provides labelled, single-shot assertions. Each
// entry point invokes a callable once, classifies the outcome,
// writes exactly one report line, and returns whether it passed.
// Faults raised by the callable are recovered and reported; they
// never reach the caller.
//
//	t := unittest.Named("test-01")
//	t.AssertEq(3, func(int32) int { return 2 }, 23)
//	// [FAILED] test-01 | expected: 3 | Got: 2
package unittest

import (
	"digital.vasic.unittest/pkg/label"
	"digital.vasic.unittest/pkg/report"
)

// UnitTest is a named assertion runner. It holds only its label
// and its sink, neither of which changes after construction, so a
// UnitTest may be copied and shared between goroutines.
type UnitTest struct {
	name label.Label
	sink report.Sink
}

// Tag names a unit test at the type level. Implementations are
// usually empty structs whose Label method returns a literal.
type Tag interface {
	Label() label.Label
}

// New creates a UnitTest reporting under name. Without options it
// writes passing lines to stdout and failures to stderr.
func New(name label.Label, opts ...Option) UnitTest {
	u := UnitTest{name: name, sink: defaultSink}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

// Named is New with a label built from s.
func Named(name string, opts ...Option) UnitTest {
	return New(label.New(name), opts...)
}

// Of creates a UnitTest named by the tag type T.
func Of[T Tag](opts ...Option) UnitTest {
	var tag T
	return New(tag.Label(), opts...)
}

// Label returns the name the test reports under.
func (u UnitTest) Label() label.Label {
	return u.name
}

func (u UnitTest) emit(o report.Outcome) bool {
	o.Label = u.name
	return report.Emit(u.sink, o)
}

// fault reports err as an ERROR line and returns false.
func (u UnitTest) fault(err error) bool {
	return u.emit(classify(err))
}

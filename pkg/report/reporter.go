// Package report renders assertion outcomes into report lines and
// delivers them to sinks. A sink has two channels: one for passing
// lines and one for failures and errors.
package report

// Sink receives report lines. Implementations must be safe for
// concurrent use when assertions run from several goroutines.
type Sink interface {
	// Success receives a [PASSED] line.
	Success(line string)

	// Failure receives a [FAILED] or [ERROR] line.
	Failure(line string)
}

// Emit renders o and routes the line to the matching channel of
// sink. It returns whether the outcome passed.
func Emit(sink Sink, o Outcome) bool {
	line := o.Line()
	if o.Passed() {
		sink.Success(line)
		return true
	}
	sink.Failure(line)
	return false
}

// MultiSink fans out every line to several sinks in order.
type MultiSink []Sink

// Success forwards to all sinks.
func (m MultiSink) Success(line string) {
	for _, s := range m {
		s.Success(line)
	}
}

// Failure forwards to all sinks.
func (m MultiSink) Failure(line string) {
	for _, s := range m {
		s.Failure(line)
	}
}

// SplitSink sends each channel to its own sink.
type SplitSink struct {
	Pass Sink
	Fail Sink
}

// Success forwards to Pass.
func (s SplitSink) Success(line string) {
	s.Pass.Success(line)
}

// Failure forwards to Fail.
func (s SplitSink) Failure(line string) {
	s.Fail.Failure(line)
}

// NullSink discards all lines.
type NullSink struct{}

// Success is a no-op.
func (NullSink) Success(string) {}

// Failure is a no-op.
func (NullSink) Failure(string) {}

package report

import "sync/atomic"

// Tally wraps a sink and counts the lines routed through each
// channel. It is safe for concurrent use.
type Tally struct {
	inner  Sink
	passed atomic.Int64
	failed atomic.Int64
}

// NewTally creates a counting decorator around inner. A nil inner
// counts without forwarding.
func NewTally(inner Sink) *Tally {
	if inner == nil {
		inner = NullSink{}
	}
	return &Tally{inner: inner}
}

// Success counts and forwards a passing line.
func (t *Tally) Success(line string) {
	t.passed.Add(1)
	t.inner.Success(line)
}

// Failure counts and forwards a failing line.
func (t *Tally) Failure(line string) {
	t.failed.Add(1)
	t.inner.Failure(line)
}

// Passed returns the number of passing lines seen.
func (t *Tally) Passed() int {
	return int(t.passed.Load())
}

// Failed returns the number of failing or erroring lines seen.
func (t *Tally) Failed() int {
	return int(t.failed.Load())
}

// Total returns the number of lines seen.
func (t *Tally) Total() int {
	return t.Passed() + t.Failed()
}

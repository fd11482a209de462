package unittest

import (
	"digital.vasic.unittest/pkg/logging"
	"digital.vasic.unittest/pkg/report"
)

var defaultSink report.Sink = report.Stdio()

// Option configures a UnitTest.
type Option func(*UnitTest)

// WithSink sets where report lines are written. A nil sink
// discards them.
func WithSink(sink report.Sink) Option {
	return func(u *UnitTest) {
		if sink == nil {
			sink = report.NullSink{}
		}
		u.sink = sink
	}
}

// WithLogger sends report lines through a structured logger.
func WithLogger(logger logging.Logger) Option {
	return WithSink(report.NewLoggerSink(logger))
}

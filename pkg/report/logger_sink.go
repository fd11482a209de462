package report

import "digital.vasic.unittest/pkg/logging"

// LoggerSink forwards lines to a structured logger: passing lines
// at info level, failures and errors at error level.
type LoggerSink struct {
	logger logging.Logger
}

// NewLoggerSink creates a sink over logger.
func NewLoggerSink(logger logging.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Success logs line at info level.
func (s *LoggerSink) Success(line string) {
	s.logger.Info(line)
}

// Failure logs line at error level.
func (s *LoggerSink) Failure(line string) {
	s.logger.Error(line)
}

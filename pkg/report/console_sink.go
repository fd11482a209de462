package report

import (
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	passColor  = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	errorColor = color.New(color.FgYellow)
)

// ConsoleSink is a WriterSink that colors lines by their tag.
// Coloring follows color.NoColor, so redirected output stays
// plain.
type ConsoleSink struct {
	*WriterSink
}

// NewConsoleSink creates a colored sink over the given writers.
func NewConsoleSink(success, failure io.Writer) *ConsoleSink {
	return &ConsoleSink{WriterSink: NewWriterSink(success, failure)}
}

// Console returns a colored sink over standard output and
// standard error.
func Console() *ConsoleSink {
	return NewConsoleSink(stdout, stderr)
}

// Success writes a green line to the success writer.
func (s *ConsoleSink) Success(line string) {
	s.WriterSink.Success(colorize(line))
}

// Failure writes a red or yellow line to the failure writer.
func (s *ConsoleSink) Failure(line string) {
	s.WriterSink.Failure(colorize(line))
}

func colorize(line string) string {
	switch {
	case strings.HasPrefix(line, TagPassed):
		return passColor.Sprint(line)
	case strings.HasPrefix(line, TagError):
		return errorColor.Sprint(line)
	default:
		return failColor.Sprint(line)
	}
}

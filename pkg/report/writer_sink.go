package report

import (
	"io"
	"os"
	"sync"
)

// WriterSink writes each line followed by a newline to one of two
// writers. A single mutex covers both writers, so lines from
// concurrent assertions never interleave and keep their relative
// order even when both writers share a terminal.
type WriterSink struct {
	mu      sync.Mutex
	success io.Writer
	failure io.Writer
}

// NewWriterSink creates a sink writing passing lines to success and
// everything else to failure. The two writers may be the same.
func NewWriterSink(success, failure io.Writer) *WriterSink {
	return &WriterSink{success: success, failure: failure}
}

// Stdio returns a sink writing to standard output and standard
// error. The streams are looked up on every write, so reassigning
// os.Stdout or os.Stderr redirects the sink.
func Stdio() *WriterSink {
	return NewWriterSink(stdout, stderr)
}

// stdStream writes to the file currently returned by its function.
type stdStream func() *os.File

func (s stdStream) Write(p []byte) (int, error) {
	return s().Write(p)
}

var (
	stdout = stdStream(func() *os.File { return os.Stdout })
	stderr = stdStream(func() *os.File { return os.Stderr })
)

// Success writes line to the success writer.
func (s *WriterSink) Success(line string) {
	s.write(s.success, line)
}

// Failure writes line to the failure writer.
func (s *WriterSink) Failure(line string) {
	s.write(s.failure, line)
}

func (s *WriterSink) write(w io.Writer, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(w, line+"\n")
}

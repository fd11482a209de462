package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"digital.vasic.unittest/pkg/label"
	"digital.vasic.unittest/pkg/logging"
)

type recordingSink struct {
	success []string
	failure []string
}

func (r *recordingSink) Success(line string) {
	r.success = append(r.success, line)
}

func (r *recordingSink) Failure(line string) {
	r.failure = append(r.failure, line)
}

func TestEmit_RoutesByKind(t *testing.T) {
	sink := &recordingSink{}
	name := label.New("t")

	assert.True(t, Emit(sink, Outcome{Kind: Passed, Label: name}))
	assert.False(t, Emit(sink, Outcome{Kind: Failed, Label: name}))
	assert.False(t, Emit(sink, Outcome{Kind: Unknown, Label: name}))

	assert.Equal(t, []string{"[PASSED] t"}, sink.success)
	assert.Equal(t, []string{
		"[FAILED] t (Predicate returned false)",
		"[ERROR] t threw unknown exception.",
	}, sink.failure)
}

func TestWriterSink_SeparateChannels(t *testing.T) {
	var out, errOut bytes.Buffer
	sink := NewWriterSink(&out, &errOut)

	sink.Success("[PASSED] a")
	sink.Failure("[FAILED] b (Predicate returned false)")

	assert.Equal(t, "[PASSED] a\n", out.String())
	assert.Equal(t, "[FAILED] b (Predicate returned false)\n", errOut.String())
}

func TestWriterSink_ConcurrentWritesKeepLinesWhole(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				sink.Success("[PASSED] even")
			} else {
				sink.Failure("[FAILED] odd (Predicate returned false)")
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 100)
	for _, l := range lines {
		assert.True(t,
			l == "[PASSED] even" ||
				l == "[FAILED] odd (Predicate returned false)",
			"interleaved line: %q", l)
	}
}

func TestConsoleSink_PlainWhenColorDisabled(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer
	sink := NewConsoleSink(&out, &errOut)

	sink.Success("[PASSED] a")
	sink.Failure("[ERROR] a threw unknown exception.")

	assert.Equal(t, "[PASSED] a\n", out.String())
	assert.Equal(t, "[ERROR] a threw unknown exception.\n", errOut.String())
}

func TestConsoleSink_ColorsByTag(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	var out, errOut bytes.Buffer
	sink := NewConsoleSink(&out, &errOut)

	sink.Success("[PASSED] a")
	sink.Failure("[FAILED] a (Predicate returned false)")
	sink.Failure("[ERROR] a threw exception: x")

	assert.Contains(t, out.String(), "\x1b[32m[PASSED] a")
	assert.Contains(t, errOut.String(), "\x1b[31m[FAILED] a")
	assert.Contains(t, errOut.String(), "\x1b[33m[ERROR] a")
}

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Info(msg string, fields ...logging.Field) {
	m.Called(msg)
}

func (m *mockLogger) Warn(msg string, fields ...logging.Field) {
	m.Called(msg)
}

func (m *mockLogger) Error(msg string, fields ...logging.Field) {
	m.Called(msg)
}

func (m *mockLogger) Debug(msg string, fields ...logging.Field) {
	m.Called(msg)
}

func (m *mockLogger) WithFields(fields ...logging.Field) logging.Logger {
	return m
}

func TestLoggerSink(t *testing.T) {
	logger := &mockLogger{}
	logger.On("Info", "[PASSED] x").Once()
	logger.On("Error", "[FAILED] x (Predicate returned false)").Once()

	sink := NewLoggerSink(logger)
	sink.Success("[PASSED] x")
	sink.Failure("[FAILED] x (Predicate returned false)")

	logger.AssertExpectations(t)
}

func TestSplitSink(t *testing.T) {
	pass, fail := &recordingSink{}, &recordingSink{}
	sink := SplitSink{Pass: pass, Fail: fail}

	sink.Success("ok")
	sink.Failure("bad")

	assert.Equal(t, []string{"ok"}, pass.success)
	assert.Empty(t, pass.failure)
	assert.Equal(t, []string{"bad"}, fail.failure)
	assert.Empty(t, fail.success)
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	sink := MultiSink{a, b, NullSink{}}

	sink.Success("ok")
	sink.Failure("bad")

	for _, r := range []*recordingSink{a, b} {
		assert.Equal(t, []string{"ok"}, r.success)
		assert.Equal(t, []string{"bad"}, r.failure)
	}
}

func TestTally(t *testing.T) {
	inner := &recordingSink{}
	tally := NewTally(inner)

	tally.Success("a")
	tally.Success("b")
	tally.Failure("c")

	assert.Equal(t, 2, tally.Passed())
	assert.Equal(t, 1, tally.Failed())
	assert.Equal(t, 3, tally.Total())
	assert.Len(t, inner.success, 2)
	assert.Len(t, inner.failure, 1)
}

func TestTally_NilInnerAndConcurrency(t *testing.T) {
	tally := NewTally(nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tally.Failure("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 64, tally.Failed())
	assert.Equal(t, 0, tally.Passed())
}

func TestStdio_FollowsRedirectedStreams(t *testing.T) {
	dir := t.TempDir()
	out, err := os.Create(filepath.Join(dir, "stdout"))
	require.NoError(t, err)
	defer out.Close()
	errOut, err := os.Create(filepath.Join(dir, "stderr"))
	require.NoError(t, err)
	defer errOut.Close()

	sink := Stdio()

	origOut, origErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = out, errOut
	sink.Success("[PASSED] a")
	sink.Failure("[FAILED] a (Predicate returned false)")
	os.Stdout, os.Stderr = origOut, origErr

	got, err := os.ReadFile(out.Name())
	require.NoError(t, err)
	assert.Equal(t, "[PASSED] a\n", string(got))

	got, err = os.ReadFile(errOut.Name())
	require.NoError(t, err)
	assert.Equal(t, "[FAILED] a (Predicate returned false)\n", string(got))
}

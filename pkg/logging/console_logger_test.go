package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.unittest/pkg/label"
)

func newTestConsole(verbose bool) (*ConsoleLogger, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return NewConsoleLoggerTo(&buf, verbose), &buf
}

func TestConsoleLogger_Levels(t *testing.T) {
	logger, buf := newTestConsole(false)

	logger.Info("hello world")
	logger.Warn("warning message")
	logger.Error("error occurred")

	out := buf.String()
	assert.Contains(t, out, "[INFO ] hello world")
	assert.Contains(t, out, "[WARN ] warning message")
	assert.Contains(t, out, "[ERROR] error occurred")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestConsoleLogger_Debug(t *testing.T) {
	quiet, quietBuf := newTestConsole(false)
	quiet.Debug("debug info")
	assert.Empty(t, quietBuf.String())

	loud, loudBuf := newTestConsole(true)
	loud.Debug("debug info")
	assert.Contains(t, loudBuf.String(), "[DEBUG] debug info")
}

func TestConsoleLogger_Fields(t *testing.T) {
	logger, buf := newTestConsole(false)

	child := logger.WithFields(StringField("label", "test-01"))
	child.Info("msg", IntField("n", 2))

	assert.Contains(t, buf.String(), "{label=test-01, n=2}")

	buf.Reset()
	logger.Info("parent")
	assert.NotContains(t, buf.String(), "label=")
}

func TestConsoleLogger_ConcurrentLinesDoNotInterleave(t *testing.T) {
	logger, buf := newTestConsole(false)
	child := logger.WithFields(StringField("child", "yes"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			logger.Info("from parent")
		}()
		go func() {
			defer wg.Done()
			child.Info("from child")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 100)
	for _, line := range lines {
		assert.Contains(t, line, "[INFO ] from ")
	}
}

func TestConsoleLogger_LabelField(t *testing.T) {
	logger, buf := newTestConsole(false)

	logger.Warn("report line not delivered",
		LabelField("label", label.New("test-01")),
		ErrorField(assert.AnError),
	)

	assert.Contains(t, buf.String(),
		"[WARN ] report line not delivered {error="+assert.AnError.Error()+", label=test-01}")
}

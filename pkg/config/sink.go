package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"digital.vasic.unittest/pkg/env"
	"digital.vasic.unittest/pkg/logging"
	"digital.vasic.unittest/pkg/report"
)

// Sink builds the report sink described by c over the process
// standard streams.
func (c *Config) Sink(
	ctx context.Context,
	logger logging.Logger,
) (report.Sink, func() error, error) {
	return c.SinkTo(ctx, logger, os.Stdout, os.Stderr)
}

// SinkTo builds the report sink described by c, resolving the
// stdout and stderr destinations to the given writers. The
// returned close function releases opened files and the listener
// connection; it is never nil and may be called more than once.
func (c *Config) SinkTo(
	ctx context.Context,
	logger logging.Logger,
	stdout, stderr io.Writer,
) (report.Sink, func() error, error) {
	if logger == nil {
		logger = logging.NullLogger{}
	}

	var closers []io.Closer
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		closers = nil
		return errors.Join(errs...)
	}

	success, err := open(c.Success, stdout, stderr)
	if err != nil {
		return nil, closeAll, err
	}
	if cl, ok := success.(io.Closer); ok {
		closers = append(closers, cl)
	}

	failure := success
	if c.Failure != c.Success {
		failure, err = open(c.Failure, stdout, stderr)
		if err != nil {
			return nil, closeAll, errors.Join(err, closeAll())
		}
		if cl, ok := failure.(io.Closer); ok {
			closers = append(closers, cl)
		}
	}

	sink := c.lineSink(success, failure)

	if c.Listener != "" {
		remote, err := report.DialWebSocketSink(
			ctx, c.Listener,
			report.WithSinkLogger(logger),
		)
		if err != nil {
			return nil, closeAll, errors.Join(
				fmt.Errorf(
					"listener %s: %w",
					env.RedactURL(c.Listener), err,
				),
				closeAll(),
			)
		}
		closers = append(closers, remote)
		sink = report.MultiSink{sink, remote}
		logger.Debug("streaming report lines",
			logging.StringField(
				"listener", env.RedactURL(c.Listener),
			),
		)
	}

	return sink, closeAll, nil
}

// lineSink colors only the channels that go to a standard
// stream. color.NoColor reflects the process stdout, so files
// always get plain lines.
func (c *Config) lineSink(success, failure io.Writer) report.Sink {
	colorSuccess := c.Color && isStream(c.Success)
	colorFailure := c.Color && isStream(c.Failure)

	switch {
	case colorSuccess && colorFailure:
		return report.NewConsoleSink(success, failure)
	case !colorSuccess && !colorFailure:
		return report.NewWriterSink(success, failure)
	}

	channel := func(w io.Writer, colored bool) report.Sink {
		if colored {
			return report.NewConsoleSink(w, w)
		}
		return report.NewWriterSink(w, w)
	}
	return report.SplitSink{
		Pass: channel(success, colorSuccess),
		Fail: channel(failure, colorFailure),
	}
}

func isStream(dest string) bool {
	return dest == Stdout || dest == Stderr
}

// open resolves a destination name. Standard streams are wrapped
// so closing the sink never closes them.
func open(dest string, stdout, stderr io.Writer) (io.Writer, error) {
	switch dest {
	case Stdout:
		return struct{ io.Writer }{stdout}, nil
	case Stderr:
		return struct{ io.Writer }{stderr}, nil
	case Discard:
		return io.Discard, nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, fmt.Errorf(
			"create report directory: %w", err,
		)
	}
	f, err := os.OpenFile(
		dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
	)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	return f, nil
}

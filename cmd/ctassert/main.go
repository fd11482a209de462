// Command ctassert evaluates build-time checks and writes a Go file
// that fails to compile when any check fails. Typical use:
//
//	//go:generate go run digital.vasic.unittest/cmd/ctassert --checks checks.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"digital.vasic.unittest/pkg/ctassert"
	"digital.vasic.unittest/pkg/logging"
	"digital.vasic.unittest/pkg/report"
)

const (
	checksFlag  = "checks"
	outFlag     = "out"
	quietFlag   = "quiet"
	verboseFlag = "verbose"
)

func main() {
	cmd := newCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[!] Error: %s\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ctassert",
		Usage:     "evaluate build-time checks and generate compile guards",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    checksFlag,
				Aliases: []string{"c"},
				Usage:   "YAML checks file",
				Value:   "ctassert.yaml",
			},
			&cli.StringFlag{
				Name:    outFlag,
				Aliases: []string{"o"},
				Usage:   "generated Go file, overrides the checks file output",
			},
			&cli.BoolFlag{
				Name:    quietFlag,
				Aliases: []string{"q"},
				Usage:   "do not print a line per check",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "log Starlark print output and progress",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := logging.NewConsoleLoggerTo(
				stderr, cmd.Bool(verboseFlag),
			)

			var sink report.Sink = report.NewConsoleSink(stdout, stderr)
			if cmd.Bool(quietFlag) {
				sink = report.NullSink{}
			}

			return generate(
				ctx, cmd.String(checksFlag), cmd.String(outFlag),
				sink, logger,
			)
		},
	}
}

func generate(
	ctx context.Context,
	checksPath, outPath string,
	sink report.Sink,
	logger logging.Logger,
) error {
	suite, err := ctassert.Load(checksPath)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = suite.OutputPath()
	}

	results, err := ctassert.Evaluate(ctx, suite, logger)
	if err != nil {
		return err
	}
	for _, r := range results {
		report.Emit(sink, r.Outcome())
	}

	src, err := ctassert.Render(suite, results)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outPath, src, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	failed := ctassert.Failed(results)
	logger.Debug("generated compile guards",
		logging.StringField("file", outPath),
		logging.IntField("checks", len(results)),
		logging.IntField("failed", len(failed)),
	)

	errs := make([]error, 0, len(failed))
	for _, r := range failed {
		errs = append(errs, fmt.Errorf(
			"%s: %s", ctassert.FailurePrefix, r.Check.Name,
		))
	}
	return errors.Join(errs...)
}

// Command rtut-demo runs the sample assertions of the unittest
// package and prints one report line per assertion.
//
// Both assertions are expected to fail: the callable returns 2 and
// the expected value is 3. The exit status stays 0 unless strict
// mode is enabled with --strict, RTUT_STRICT or the config file.
package main

//go:generate go run ../ctassert --checks checks.yaml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"digital.vasic.unittest/pkg/config"
	"digital.vasic.unittest/pkg/env"
	"digital.vasic.unittest/pkg/label"
	"digital.vasic.unittest/pkg/logging"
	"digital.vasic.unittest/pkg/report"
	"digital.vasic.unittest/pkg/unittest"
)

const (
	configFlag  = "config"
	envFileFlag = "env-file"
	strictFlag  = "strict"
	verboseFlag = "verbose"
	noColorFlag = "no-color"
)

type test01 struct{}

func (test01) Label() label.Label { return label.New("test-01") }

func answer(int32) int { return 2 }

func init() {
	unittest.CompileTimeAssert(2, answer, 23)
}

func main() {
	cmd := newCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[!] Error: %s\n", err)
		os.Exit(1)
	}
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "rtut-demo",
		Usage:     "run the sample labelled assertions",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configFlag,
				Usage: "YAML config file",
			},
			&cli.StringFlag{
				Name:  envFileFlag,
				Usage: ".env file with RTUT_* settings",
			},
			&cli.BoolFlag{
				Name:  strictFlag,
				Usage: "exit with status 1 when an assertion fails",
			},
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "debug logging",
			},
			&cli.BoolFlag{
				Name:  noColorFlag,
				Usage: "plain report lines",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return run(ctx, cfg, stdout, stderr)
		},
	}
}

// loadConfig layers the config file, the environment and the
// command-line flags, in that order.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String(configFlag); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	loader := env.NewLoader()
	if path := cmd.String(envFileFlag); path != "" {
		if err := loader.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(loader); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if cmd.IsSet(strictFlag) {
		cfg.Strict = cmd.Bool(strictFlag)
	}
	if cmd.IsSet(verboseFlag) {
		cfg.Verbose = cmd.Bool(verboseFlag)
	}
	if cmd.Bool(noColorFlag) {
		cfg.Color = false
	}
	return cfg, nil
}

func run(
	ctx context.Context,
	cfg *config.Config,
	stdout, stderr io.Writer,
) (err error) {
	logger := logging.NewConsoleLoggerTo(stderr, cfg.Verbose)

	sink, closeSink, err := cfg.SinkTo(ctx, logger, stdout, stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeSink())
	}()

	tally := report.NewTally(sink)
	test := unittest.Of[test01](unittest.WithSink(tally))

	test.AssertEq(3, answer, 23)
	unittest.AssertEqConst(test, uint64(3), answer, 23)

	logger.Debug("assertions finished",
		logging.IntField("passed", tally.Passed()),
		logging.IntField("failed", tally.Failed()),
	)

	if cfg.Strict && tally.Failed() > 0 {
		return fmt.Errorf(
			"%d of %d assertions failed", tally.Failed(), tally.Total(),
		)
	}
	return nil
}

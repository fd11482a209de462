// Package config loads the settings used by the commands to build
// a report sink: where passing and failing lines go, whether they
// are colored, and whether failures change the exit status.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.unittest/pkg/env"
)

// Destination names understood by Success and Failure. Any other
// value is a file path.
const (
	Stdout  = "stdout"
	Stderr  = "stderr"
	Discard = "discard"
)

// Environment variables read by ApplyEnv.
const (
	EnvColor    = "RTUT_COLOR"
	EnvVerbose  = "RTUT_VERBOSE"
	EnvStrict   = "RTUT_STRICT"
	EnvSuccess  = "RTUT_SUCCESS"
	EnvFailure  = "RTUT_FAILURE"
	EnvListener = "RTUT_LISTENER"
)

// Config holds report settings.
type Config struct {
	// Color enables colored console lines.
	Color bool `yaml:"color"`

	// Verbose enables debug logging in the commands.
	Verbose bool `yaml:"verbose"`

	// Strict makes a failed assertion produce a non-zero exit
	// status.
	Strict bool `yaml:"strict"`

	// Success is the destination of [PASSED] lines.
	Success string `yaml:"success"`

	// Failure is the destination of [FAILED] and [ERROR] lines.
	Failure string `yaml:"failure"`

	// Listener is an optional ws:// or wss:// URL that receives
	// a copy of every line.
	Listener string `yaml:"listener,omitempty"`
}

// Default returns the settings used when nothing is configured:
// colored lines on stdout and stderr, exit status unaffected.
func Default() *Config {
	return &Config{
		Color:   true,
		Success: Stdout,
		Failure: Stderr,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields with the RTUT_* variables visible to
// loader.
func (c *Config) ApplyEnv(loader *env.Loader) error {
	var errs []error

	bools := []struct {
		key string
		dst *bool
	}{
		{EnvColor, &c.Color},
		{EnvVerbose, &c.Verbose},
		{EnvStrict, &c.Strict},
	}
	for _, b := range bools {
		v, ok, err := loader.GetBool(b.key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			*b.dst = v
		}
	}

	c.Success = loader.GetWithDefault(EnvSuccess, c.Success)
	c.Failure = loader.GetWithDefault(EnvFailure, c.Failure)
	c.Listener = loader.GetWithDefault(EnvListener, c.Listener)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return c.Validate()
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Success) == "" {
		errs = append(errs, errors.New("success destination is empty"))
	}
	if strings.TrimSpace(c.Failure) == "" {
		errs = append(errs, errors.New("failure destination is empty"))
	}
	if c.Listener != "" &&
		!strings.HasPrefix(c.Listener, "ws://") &&
		!strings.HasPrefix(c.Listener, "wss://") {
		errs = append(errs, fmt.Errorf(
			"listener %s is not a websocket URL",
			env.RedactURL(c.Listener),
		))
	}

	return errors.Join(errs...)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

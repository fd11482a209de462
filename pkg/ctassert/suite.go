// Package ctassert evaluates assertions at build time. A suite
// names a Starlark source of pure functions and a list of checks;
// each check calls one function and compares the result with an
// expected constant. Render turns the results into a Go file that
// only compiles when every check held.
package ctassert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSteps bounds the Starlark computation of one suite.
const DefaultMaxSteps = 1_000_000

// Check is one build-time assertion.
type Check struct {
	// Name is the label reported for the check.
	Name string `yaml:"name"`

	// Call is the Starlark function to invoke.
	Call string `yaml:"call"`

	// Args are passed positionally to Call.
	Args []any `yaml:"args,omitempty"`

	// Expected is the value the call must return.
	Expected any `yaml:"expected"`
}

// Suite is a checks file.
type Suite struct {
	// Source is the Starlark file, relative to the checks file.
	Source string `yaml:"source"`

	// Package is the Go package of the generated file.
	Package string `yaml:"package"`

	// Output is the generated file, relative to the checks file.
	Output string `yaml:"output,omitempty"`

	// MaxSteps limits Starlark execution. Zero means
	// DefaultMaxSteps.
	MaxSteps uint64 `yaml:"max_steps,omitempty"`

	Checks []Check `yaml:"checks"`

	// dir is the directory of the checks file.
	dir string
}

// Load reads and validates a checks file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read checks %s: %w", path, err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse checks %s: %w", path, err)
	}
	s.dir = filepath.Dir(path)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid checks %s: %w", path, err)
	}
	return &s, nil
}

// Validate reports every problem with the suite at once.
func (s *Suite) Validate() error {
	var errs []error

	if s.Source == "" {
		errs = append(errs, errors.New("source is required"))
	}
	if !isIdent(s.Package) {
		errs = append(errs, fmt.Errorf(
			"package %q is not a Go identifier", s.Package,
		))
	}
	if len(s.Checks) == 0 {
		errs = append(errs, errors.New("no checks"))
	}

	names := make(map[string]bool, len(s.Checks))
	idents := make(map[string]string, len(s.Checks))
	for i, c := range s.Checks {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("check %d: name is required", i))
			continue
		}
		if c.Call == "" {
			errs = append(errs, fmt.Errorf("check %s: call is required", c.Name))
		}
		if names[c.Name] {
			errs = append(errs, fmt.Errorf("check %s: duplicate name", c.Name))
			continue
		}
		names[c.Name] = true

		id := Ident(c.Name)
		if other, ok := idents[id]; ok {
			errs = append(errs, fmt.Errorf(
				"checks %s and %s both map to %s", other, c.Name, id,
			))
		}
		idents[id] = c.Name
	}

	return errors.Join(errs...)
}

// SourcePath returns the Starlark file path.
func (s *Suite) SourcePath() string {
	return s.resolve(s.Source)
}

// OutputPath returns the generated file path. Without an explicit
// output the file is named after the source and placed next to
// the checks file.
func (s *Suite) OutputPath() string {
	if s.Output != "" {
		return s.resolve(s.Output)
	}
	base := strings.TrimSuffix(filepath.Base(s.Source), filepath.Ext(s.Source))
	return s.resolve(base + "_ctassert.go")
}

func (s *Suite) resolve(p string) string {
	if filepath.IsAbs(p) || s.dir == "" {
		return p
	}
	return filepath.Join(s.dir, p)
}

func (s *Suite) maxSteps() uint64 {
	if s.MaxSteps == 0 {
		return DefaultMaxSteps
	}
	return s.MaxSteps
}

// Ident converts a check name to the exported constant holding its
// result: "test-01" becomes CheckTest01.
func Ident(name string) string {
	var b strings.Builder
	b.WriteString("Check")

	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

package ctassert

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"

	"go.starlark.net/starlark"

	"digital.vasic.unittest/pkg/label"
	"digital.vasic.unittest/pkg/logging"
	"digital.vasic.unittest/pkg/report"
)

// Kind is the type of a constant result.
type Kind int

const (
	Int Kind = iota
	Float
	String
	Bool
)

// Constant is a result rendered as a Go constant literal.
type Constant struct {
	Kind    Kind
	Literal string
}

func (c Constant) numeric() bool {
	return c.Kind == Int || c.Kind == Float
}

// comparable reports whether c == o is a valid Go constant
// expression.
func (c Constant) comparable(o Constant) bool {
	return c.Kind == o.Kind || c.numeric() && o.numeric()
}

// Result is the outcome of one check.
type Result struct {
	Check Check
	Got   Constant
	Want  Constant

	// Err is set when the call could not be evaluated.
	Err    error
	Passed bool
}

// Outcome converts the result into a report outcome labelled with
// the check name.
func (r Result) Outcome() report.Outcome {
	o := report.Outcome{Label: label.New(r.Check.Name)}
	switch {
	case r.Err != nil:
		o.Kind = report.Error
		o.Fault = r.Err
	case !r.Passed:
		o.Kind = report.Mismatch
		o.Expected = r.Want.Literal
		o.Actual = r.Got.Literal
	default:
		o.Kind = report.Passed
	}
	return o
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate executes the suite source once and runs every check
// against its globals. The source cannot load other modules.
// Output of print() goes to logger at debug level. An error is
// returned only when the source itself cannot be executed; check
// failures are reported in the results.
func Evaluate(
	ctx context.Context,
	s *Suite,
	logger logging.Logger,
) ([]Result, error) {
	if logger == nil {
		logger = logging.NullLogger{}
	}

	src, err := os.ReadFile(s.SourcePath())
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	thread := &starlark.Thread{
		Name: "ctassert",
		Print: func(_ *starlark.Thread, msg string) {
			logger.Debug(msg, logging.StringField("source", s.Source))
		},
	}
	thread.SetMaxExecutionSteps(s.maxSteps())

	if err := ctx.Err(); err != nil {
		thread.Cancel(err.Error())
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	globals, err := starlark.ExecFile(thread, s.Source, src, nil)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", s.Source, err)
	}

	results := make([]Result, 0, len(s.Checks))
	for _, c := range s.Checks {
		r := check(thread, globals, c)
		logger.Debug("check evaluated",
			logging.StringField("check", c.Name),
			logging.BoolField("passed", r.Passed),
		)
		results = append(results, r)
	}
	return results, nil
}

func check(
	thread *starlark.Thread,
	globals starlark.StringDict,
	c Check,
) Result {
	r := Result{Check: c}

	want, err := toValue(c.Expected)
	if err != nil {
		r.Err = fmt.Errorf("expected: %w", err)
		return r
	}
	if r.Want, err = constantOf(want); err != nil {
		r.Err = fmt.Errorf("expected: %w", err)
		return r
	}

	fn, ok := globals[c.Call].(starlark.Callable)
	if !ok {
		r.Err = fmt.Errorf("%s is not a function", c.Call)
		return r
	}

	args := make(starlark.Tuple, len(c.Args))
	for i, a := range c.Args {
		if args[i], err = toValue(a); err != nil {
			r.Err = fmt.Errorf("argument %d: %w", i, err)
			return r
		}
	}

	got, err := starlark.Call(thread, fn, args, nil)
	if err != nil {
		r.Err = err
		return r
	}
	if r.Got, err = constantOf(got); err != nil {
		r.Err = err
		return r
	}

	eq, err := starlark.Equal(got, want)
	if err != nil {
		r.Err = err
		return r
	}
	r.Passed = eq
	return r
}

// toValue converts a decoded YAML scalar or list.
func toValue(v any) (starlark.Value, error) {
	switch v := v.(type) {
	case nil:
		return starlark.None, nil
	case bool:
		return starlark.Bool(v), nil
	case int:
		return starlark.MakeInt(v), nil
	case int64:
		return starlark.MakeInt64(v), nil
	case uint64:
		return starlark.MakeUint64(v), nil
	case float64:
		return starlark.Float(v), nil
	case string:
		return starlark.String(v), nil
	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			sv, err := toValue(e)
			if err != nil {
				return nil, err
			}
			elems[i] = sv
		}
		return starlark.NewList(elems), nil
	default:
		return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

func constantOf(v starlark.Value) (Constant, error) {
	switch v := v.(type) {
	case starlark.Int:
		return Constant{Kind: Int, Literal: v.String()}, nil
	case starlark.Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Constant{}, fmt.Errorf("%v has no constant form", v)
		}
		return Constant{
			Kind:    Float,
			Literal: strconv.FormatFloat(f, 'g', -1, 64),
		}, nil
	case starlark.String:
		return Constant{
			Kind:    String,
			Literal: strconv.Quote(string(v)),
		}, nil
	case starlark.Bool:
		return Constant{
			Kind:    Bool,
			Literal: strconv.FormatBool(bool(v)),
		}, nil
	default:
		return Constant{}, fmt.Errorf(
			"%s result %s is not a constant", v.Type(), v,
		)
	}
}

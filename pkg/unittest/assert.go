package unittest

import (
	"fmt"
	"reflect"

	"digital.vasic.unittest/pkg/report"
)

// Run invokes fn with args and passes when the result is truthy:
// true, a non-zero number, or a non-nil reference. A callable
// returning only an error passes when the error is nil. A callable
// with no results is not a predicate and is reported as an error
// without being invoked.
//
// A variadic callable takes its variadic arguments one by one, or
// as a single final slice when that slice cannot itself be an
// element, like f(xs...).
func (u UnitTest) Run(fn any, args ...any) bool {
	if ft := reflect.TypeOf(fn); ft != nil &&
		ft.Kind() == reflect.Func && ft.NumOut() == 0 {
		return u.fault(fmt.Errorf(
			"%w: %s returns nothing to test", ErrResult, ft,
		))
	}

	out, err := call(fn, args)
	if err != nil {
		return u.fault(err)
	}

	ok, err := truthy(out)
	if err != nil {
		return u.fault(err)
	}
	if !ok {
		return u.emit(report.Outcome{Kind: report.Failed})
	}
	return u.emit(report.Outcome{Kind: report.Passed})
}

// AssertEq invokes fn with args and passes when the result equals
// expected. Numbers compare by value; other values are converted
// to the result type and compared deeply.
func (u UnitTest) AssertEq(expected, fn any, args ...any) bool {
	return u.compare(true, expected, fn, args)
}

// AssertNe is AssertEq with the condition inverted.
func (u UnitTest) AssertNe(expected, fn any, args ...any) bool {
	return u.compare(false, expected, fn, args)
}

func (u UnitTest) compare(
	wantEqual bool,
	expected, fn any,
	args []any,
) bool {
	got, err := callValue(fn, args)
	if err != nil {
		return u.fault(err)
	}

	eq, err := equal(expected, got)
	if err != nil {
		return u.fault(err)
	}
	if eq != wantEqual {
		return u.emit(report.Outcome{
			Kind:     report.Mismatch,
			Expected: expected,
			Actual:   got.Interface(),
		})
	}
	return u.emit(report.Outcome{Kind: report.Passed})
}

// AssertEqConst is AssertEq with a typed expected value fixed at
// the call site. The result is converted to T and compared with
// ==, so T must be comparable.
func AssertEqConst[T comparable](
	u UnitTest,
	expected T,
	fn any,
	args ...any,
) bool {
	return compareConst(u, true, expected, fn, args)
}

// AssertNeConst is AssertEqConst with the condition inverted.
func AssertNeConst[T comparable](
	u UnitTest,
	expected T,
	fn any,
	args ...any,
) bool {
	return compareConst(u, false, expected, fn, args)
}

func compareConst[T comparable](
	u UnitTest,
	wantEqual bool,
	expected T,
	fn any,
	args []any,
) bool {
	got, err := callValue(fn, args)
	if err != nil {
		return u.fault(err)
	}

	eq, actual, err := equalConst(expected, got)
	if err != nil {
		return u.fault(err)
	}
	if eq != wantEqual {
		return u.emit(report.Outcome{
			Kind:     report.Mismatch,
			Expected: expected,
			Actual:   actual,
		})
	}
	return u.emit(report.Outcome{Kind: report.Passed})
}

// CompileTimeAssert checks fn(args...) == expected while the
// program is being initialised. Call it from a package init
// function: a mismatch or fault panics with a *CompileTimeError,
// so the binary, or the test binary, stops before any other code
// runs. It writes no report line. For checks that must stop
// `go build` itself, see cmd/ctassert.
func CompileTimeAssert[T comparable](
	expected T,
	fn any,
	args ...any,
) {
	got, err := callValue(fn, args)
	if err != nil {
		panic(&CompileTimeError{Err: err})
	}

	eq, actual, err := equalConst(expected, got)
	if err != nil {
		panic(&CompileTimeError{Err: err})
	}
	if !eq {
		panic(&CompileTimeError{Err: fmt.Errorf(
			"expected %v, got %v", expected, actual,
		)})
	}
}

package unittest

import (
	"fmt"
	"math"
	"math/big"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// equal compares a runtime expected value with a call result.
// Numbers compare by value across types; everything else is
// converted to the result type and compared deeply.
func equal(expected any, got reflect.Value) (eq bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			eq, err = false, recovered(r)
		}
	}()

	if expected == nil {
		if !nillable(got.Kind()) {
			return false, fmt.Errorf(
				"%w: nil and %s", ErrNotComparable, got.Type(),
			)
		}
		return got.IsNil(), nil
	}

	ev := reflect.ValueOf(expected)
	if gv := unwrap(got); isNumeric(ev.Kind()) && isNumeric(gv.Kind()) {
		return numericEqual(ev, gv), nil
	}

	rt := got.Type()
	switch {
	case ev.Type().AssignableTo(rt):
		x := reflect.New(rt).Elem()
		x.Set(ev)
		ev = x
	case ev.Kind() == got.Kind() && ev.Type().ConvertibleTo(rt):
		ev = ev.Convert(rt)
	default:
		return false, fmt.Errorf(
			"%w: %T and %s", ErrNotComparable, expected, rt,
		)
	}

	return cmp.Equal(ev.Interface(), got.Interface(), exportAll), nil
}

// equalConst compares a typed expected value with a call result
// using ==. It also returns the result as printed in a report.
func equalConst[T comparable](
	expected T,
	got reflect.Value,
) (eq bool, actual any, err error) {
	defer func() {
		if r := recover(); r != nil {
			eq, err = false, recovered(r)
		}
	}()

	actual = got.Interface()

	ev := reflect.ValueOf(expected)
	gv := unwrap(got)
	if ev.IsValid() && isNumeric(ev.Kind()) && isNumeric(gv.Kind()) {
		return numericEqual(ev, gv), actual, nil
	}

	tt := reflect.TypeOf((*T)(nil)).Elem()
	if got.Kind() == reflect.Interface && !got.Type().AssignableTo(tt) {
		if got.IsNil() {
			nilT := tt.Kind() == reflect.Interface &&
				reflect.ValueOf(&expected).Elem().IsNil()
			return nilT, actual, nil
		}
		got = got.Elem()
	}
	if !got.Type().AssignableTo(tt) {
		if got.Kind() != tt.Kind() || !got.Type().ConvertibleTo(tt) {
			return false, actual, fmt.Errorf(
				"%w: %s and %s", ErrNotComparable, tt, got.Type(),
			)
		}
		got = got.Convert(tt)
	}

	x := reflect.New(tt).Elem()
	x.Set(got)
	v, _ := x.Interface().(T)
	return v == expected, actual, nil
}

// unwrap returns the dynamic value held by a non-nil interface.
func unwrap(v reflect.Value) reflect.Value {
	if v.Kind() == reflect.Interface && !v.IsNil() {
		return v.Elem()
	}
	return v
}

func isNumeric(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || isFloat(k) || isComplex(k)
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isComplex(k reflect.Kind) bool {
	return k == reflect.Complex64 || k == reflect.Complex128
}

// numericEqual compares two numeric values by mathematical value,
// whatever their widths and signedness.
func numericEqual(a, b reflect.Value) bool {
	if isComplex(a.Kind()) || isComplex(b.Kind()) {
		return toComplex(a) == toComplex(b)
	}

	fa, okA := toBig(a)
	fb, okB := toBig(b)
	if !okA || !okB {
		return false
	}
	return fa.Cmp(fb) == 0
}

// toBig returns the exact value of v. NaN has no value and
// reports false.
func toBig(v reflect.Value) (*big.Float, bool) {
	switch k := v.Kind(); {
	case isInt(k):
		return new(big.Float).SetInt64(v.Int()), true
	case isUint(k):
		return new(big.Float).SetUint64(v.Uint()), true
	default:
		f := v.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	}
}

func toComplex(v reflect.Value) complex128 {
	switch k := v.Kind(); {
	case isComplex(k):
		return v.Complex()
	case isInt(k):
		return complex(float64(v.Int()), 0)
	case isUint(k):
		return complex(float64(v.Uint()), 0)
	default:
		return complex(v.Float(), 0)
	}
}

package unittest

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// call invokes fn once with args. A trailing error result is
// removed from the returned values; when it is non-nil the call
// fails with a *Fault. Panics are recovered into faults.
func call(fn any, args []any) (out []reflect.Value, err error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotCallable, fn)
	}

	ft := fv.Type()
	in, spread, err := bind(ft, args)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, recovered(r)
		}
	}()

	if spread {
		out = fv.CallSlice(in)
	} else {
		out = fv.Call(in)
	}

	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, &Fault{Err: e.Interface().(error)}
		}
		out = out[:n-1]
	}
	return out, nil
}

// callValue is call for callables that must produce exactly one
// value besides the optional error.
func callValue(fn any, args []any) (reflect.Value, error) {
	out, err := call(fn, args)
	if err != nil {
		return reflect.Value{}, err
	}
	if len(out) != 1 {
		return reflect.Value{}, fmt.Errorf(
			"%w: expected one result, got %d",
			ErrResult, len(out),
		)
	}
	return out[0], nil
}

// bind converts args to call arguments. spread reports that the
// last argument is the variadic slice itself and the call must use
// CallSlice.
func bind(
	ft reflect.Type,
	args []any,
) (in []reflect.Value, spread bool, err error) {
	n := ft.NumIn()
	if ft.IsVariadic() {
		if len(args) < n-1 {
			return nil, false, fmt.Errorf(
				"%w: want at least %d, got %d",
				ErrArgs, n-1, len(args),
			)
		}
		spread = len(args) == n && isSlice(ft.In(n-1), args[n-1])
	} else if len(args) != n {
		return nil, false, fmt.Errorf(
			"%w: want %d, got %d", ErrArgs, n, len(args),
		)
	}

	in = make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		switch {
		case spread && i == n-1:
			pt = ft.In(i)
		case ft.IsVariadic() && i >= n-1:
			pt = ft.In(n - 1).Elem()
		default:
			pt = ft.In(i)
		}

		v, ok := bindArg(pt, a)
		if !ok {
			return nil, false, fmt.Errorf(
				"%w: argument %d: cannot use %T as %s",
				ErrArgs, i, a, pt,
			)
		}
		in[i] = v
	}
	return in, spread, nil
}

// isSlice reports whether a can only be the variadic slice of type
// st: it is assignable to st but not to the element type.
func isSlice(st reflect.Type, a any) bool {
	if a == nil {
		return false
	}
	at := reflect.TypeOf(a)
	return at.AssignableTo(st) && !at.AssignableTo(st.Elem())
}

// bindArg adapts a to parameter type pt. Untyped constants arrive
// as int or float64, so numeric values convert when no precision
// is lost.
func bindArg(pt reflect.Type, a any) (reflect.Value, bool) {
	if a == nil {
		if nillable(pt.Kind()) {
			return reflect.Zero(pt), true
		}
		return reflect.Value{}, false
	}

	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(pt) {
		return av, true
	}

	if isNumeric(av.Kind()) && isNumeric(pt.Kind()) &&
		av.Type().ConvertibleTo(pt) {
		cv := av.Convert(pt)
		if numericEqual(av, cv) {
			return cv, true
		}
	}
	return reflect.Value{}, false
}

// truthy interprets a predicate result. A callable whose only
// result is an error holds when that error is nil.
func truthy(out []reflect.Value) (bool, error) {
	switch len(out) {
	case 0:
		return true, nil
	case 1:
	default:
		return false, fmt.Errorf(
			"%w: predicate returned %d values",
			ErrResult, len(out),
		)
	}

	v := out[0]
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false, nil
		}
		v = v.Elem()
	}

	switch k := v.Kind(); {
	case k == reflect.Bool:
		return v.Bool(), nil
	case isNumeric(k):
		return !v.IsZero(), nil
	case nillable(k):
		return !v.IsNil(), nil
	default:
		return false, fmt.Errorf(
			"%w: %s is not a predicate result",
			ErrResult, v.Type(),
		)
	}
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice,
		reflect.UnsafePointer:
		return true
	}
	return false
}

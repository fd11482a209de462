package ctassert

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"
)

// FailurePrefix starts the message of every failed check.
const FailurePrefix = "Compile-time test failed"

// Render produces the generated Go file for results. Every
// evaluated check becomes an exported constant holding its result.
// Every failed check adds a map literal with a duplicate constant
// key, so the package no longer compiles.
func Render(s *Suite, results []Result) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintf(&b,
		"// Code generated by ctassert from %s. DO NOT EDIT.\n\n",
		filepath.Base(s.Source),
	)
	fmt.Fprintf(&b, "package %s\n", s.Package)

	var consts []Result
	for _, r := range results {
		if r.Err == nil {
			consts = append(consts, r)
		}
	}
	if len(consts) > 0 {
		b.WriteString("\nconst (\n")
		for _, r := range consts {
			fmt.Fprintf(&b, "// %s: %s\n%s = %s\n",
				r.Check.Name, callString(r.Check),
				Ident(r.Check.Name), r.Got.Literal,
			)
		}
		b.WriteString(")\n")
	}

	for _, r := range Failed(results) {
		fmt.Fprintf(&b, "\n// %s: %s\n", FailurePrefix, r.Check.Name)
		if r.Err != nil {
			fmt.Fprintf(&b, "// %s\n", firstLine(r.Err.Error()))
		}
		fmt.Fprintf(&b,
			"var _ = map[bool]struct{}{false: {}, %s: {}}\n",
			guard(r),
		)
	}

	out, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated file: %w", err)
	}
	return out, nil
}

// guard is a constant expression that is false for a failed check.
func guard(r Result) string {
	if r.Err != nil || !r.Got.comparable(r.Want) {
		return "false"
	}
	return r.Got.Literal + " == " + r.Want.Literal
}

func callString(c Check) string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		if v, err := toValue(a); err == nil {
			args[i] = v.String()
		} else {
			args[i] = fmt.Sprint(a)
		}
	}
	return c.Call + "(" + strings.Join(args, ", ") + ")"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"digital.vasic.unittest/pkg/label"
)

func TestOutcome_Line(t *testing.T) {
	name := label.New("test-01")

	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{
			name:    "passed",
			outcome: Outcome{Kind: Passed, Label: name},
			want:    "[PASSED] test-01",
		},
		{
			name:    "predicate false",
			outcome: Outcome{Kind: Failed, Label: name},
			want:    "[FAILED] test-01 (Predicate returned false)",
		},
		{
			name: "mismatch",
			outcome: Outcome{
				Kind: Mismatch, Label: name,
				Expected: 3, Actual: 2,
			},
			want: "[FAILED] test-01 | expected: 3 | Got: 2",
		},
		{
			name: "mismatch strings",
			outcome: Outcome{
				Kind: Mismatch, Label: name,
				Expected: "a", Actual: "b",
			},
			want: "[FAILED] test-01 | expected: a | Got: b",
		},
		{
			name: "known fault",
			outcome: Outcome{
				Kind: Error, Label: name,
				Fault: errors.New("boom"),
			},
			want: "[ERROR] test-01 threw exception: boom",
		},
		{
			name:    "unknown fault",
			outcome: Outcome{Kind: Unknown, Label: name},
			want:    "[ERROR] test-01 threw unknown exception.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Line())
			assert.Equal(t, tt.outcome.Kind == Passed, tt.outcome.Passed())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "passed", Passed.String())
	assert.Equal(t, "mismatch", Mismatch.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

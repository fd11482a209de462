package label

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountDigits(t *testing.T) {
	tests := []struct {
		n    int64
		want int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{-5, 2},
		{-10, 3},
		{123, 3},
		{math.MaxInt64, 19},
		{math.MinInt64, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CountDigits(tt.n), "n=%d", tt.n)
	}
}

func TestFromInt(t *testing.T) {
	assert.Equal(t, New("0"), FromInt(0))
	assert.Equal(t, New("-5"), FromInt(-5))
	assert.Equal(t, New("123"), FromInt(123))
}

func TestFromInt_MatchesDecimalFormatting(t *testing.T) {
	values := []int64{
		1, -1, 7, 42, -42, 1000, -1000, 99999,
		math.MaxInt32, math.MinInt32,
		math.MaxInt64, math.MinInt64,
	}

	for _, n := range values {
		l := FromInt(n)
		want := strconv.FormatInt(n, 10)

		assert.Equal(t, want, l.String())
		assert.Equal(t, len(want), l.Len())
		assert.Equal(t, CountDigits(n), l.Len())
	}
}

func TestStrLen(t *testing.T) {
	assert.Equal(t, 0, StrLen(nil))
	assert.Equal(t, 0, StrLen([]byte{0}))
	assert.Equal(t, 3, StrLen([]byte("abc\x00def")))
	assert.Equal(t, 3, StrLen([]byte("abc")))
	assert.Equal(t, 5, StrLen(New("hello").Bytes()))
}

package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want Number
	}{
		{"5", Int(5)},
		{"-12", Int(-12)},
		{"2.5", Float(2.5)},
		{"1e3", Float(1000)},
		{"inf", Float(math.Inf(1))},
		{"-Inf", Float(math.Inf(-1))},
		{"9223372036854775808", Float(9223372036854775808)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "5x", "1,5"} {
		_, err := ParseNumber(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestToNumber(t *testing.T) {
	accepted := []any{int(1), int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint16(1), uint32(1), uint64(1), float32(1), float64(1), Int(1), json.Number("1")}
	for _, v := range accepted {
		n, ok := toNumber(v)
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 1.0, n.Float64(), "%T", v)
	}

	for _, v := range []any{"1", true, nil, []int{1}, json.Number("one")} {
		_, ok := toNumber(v)
		assert.False(t, ok, "%T", v)
	}

	n, ok := toNumber(uint64(math.MaxUint64))
	require.True(t, ok)
	assert.True(t, n.IsFloat())
}

func TestNumberString(t *testing.T) {
	assert.Equal(t, "8", Int(8).String())
	assert.Equal(t, "1.6666666666666667", Float(5.0/3.0).String())
	assert.Equal(t, "6", Float(6).String())
	assert.Equal(t, "+Inf", Float(math.Inf(1)).String())
	assert.Equal(t, "NaN", Float(math.NaN()).String())
}

func TestNumberEqual(t *testing.T) {
	assert.True(t, Int(2).Equal(Float(2)))
	assert.False(t, Int(2).Equal(Int(3)))
	assert.False(t, Float(math.NaN()).Equal(Float(math.NaN())))

	i, ok := Int(7).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(7), i)
	_, ok = Float(7).Int64()
	assert.False(t, ok)
}

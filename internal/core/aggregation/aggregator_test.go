package aggregation

import (
	"testing"

	"github.com/aevon-lab/obrc/internal/core/record"
	"github.com/stretchr/testify/require"
)

func accumulate(values ...record.Tenths) Accumulator {
	acc := NewAccumulator()
	for _, v := range values {
		acc.Update(v)
	}
	return acc
}

func TestAccumulator_Update(t *testing.T) {
	tests := []struct {
		name   string
		values []record.Tenths
		want   Accumulator
	}{
		{
			name:   "first update wins both bounds",
			values: []record.Tenths{120},
			want:   Accumulator{Min: 120, Max: 120, Sum: 120, Count: 1},
		},
		{
			name:   "negative only",
			values: []record.Tenths{-69, -88, -1},
			want:   Accumulator{Min: -88, Max: -1, Sum: -158, Count: 3},
		},
		{
			name:   "mixed sign",
			values: []record.Tenths{100, -50, 300, 0},
			want:   Accumulator{Min: -50, Max: 300, Sum: 350, Count: 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, accumulate(tc.values...))
		})
	}
}

func TestNewAccumulator_IsEmpty(t *testing.T) {
	acc := NewAccumulator()
	require.True(t, acc.Empty())

	acc.Update(0)
	require.False(t, acc.Empty())
	require.Equal(t, record.Tenths(0), acc.Min)
	require.Equal(t, record.Tenths(0), acc.Max)
}

func TestAccumulator_MergeWithEmptyIsIdentity(t *testing.T) {
	original := accumulate(10, 20, 30)

	left := original
	left.Merge(NewAccumulator())
	require.Equal(t, original, left)

	right := NewAccumulator()
	right.Merge(original)
	require.Equal(t, original, right)
}

func TestAccumulator_MergeIsOrderIndependent(t *testing.T) {
	values := []record.Tenths{-999, 12, 57, 0, 999, -3, 41, 41}
	whole := accumulate(values...)

	a := accumulate(values[:3]...)
	b := accumulate(values[3:5]...)
	c := accumulate(values[5:]...)

	// (a+b)+c
	ab := a
	ab.Merge(b)
	ab.Merge(c)

	// a+(b+c)
	bc := b
	bc.Merge(c)
	abc := a
	abc.Merge(bc)

	// c+a+b
	cab := c
	cab.Merge(a)
	cab.Merge(b)

	require.Equal(t, whole, ab)
	require.Equal(t, whole, abc)
	require.Equal(t, whole, cab)
}

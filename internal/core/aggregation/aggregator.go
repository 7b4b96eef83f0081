package aggregation

import (
	"math"

	"github.com/aevon-lab/obrc/internal/core/record"
)

// MaxRecordsPerKey is the per-key observation count the int64 sum is sized for.
const MaxRecordsPerKey = 1 << 33

// Compile-time proof that MaxRecordsPerKey values of magnitude MaxAbsTenths fit in the sum.
const _ = uint64(math.MaxInt64/record.MaxAbsTenths - MaxRecordsPerKey)

// Accumulator is the running aggregate of one station.
// The zero value is not usable: construct with NewAccumulator.
type Accumulator struct {
	Min   record.Tenths
	Max   record.Tenths
	Sum   int64
	Count uint64
}

// NewAccumulator returns an empty accumulator whose bounds lose to any real value.
// It is also the identity element of Merge.
func NewAccumulator() Accumulator {
	return Accumulator{
		Min: math.MaxInt64,
		Max: math.MinInt64,
	}
}

// Update folds one measurement into the accumulator.
func (a *Accumulator) Update(v record.Tenths) {
	if v < a.Min {
		a.Min = v
	}
	if v > a.Max {
		a.Max = v
	}
	a.Sum += int64(v)
	a.Count++
}

// Merge folds another accumulator into a. Merge is associative and commutative.
func (a *Accumulator) Merge(other Accumulator) {
	if other.Min < a.Min {
		a.Min = other.Min
	}
	if other.Max > a.Max {
		a.Max = other.Max
	}
	a.Sum += other.Sum
	a.Count += other.Count
}

// Empty reports whether no measurement has been folded in.
func (a Accumulator) Empty() bool {
	return a.Count == 0
}

package aggregation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrEmptyAccumulator is returned when finalizing an accumulator with no observations.
var ErrEmptyAccumulator = errors.New("accumulator has no observations")

const outputPrecision = 1

var ten = decimal.NewFromInt(10)

// Finalize converts the fixed-point totals into decimals.
// Each field is rounded once, half away from zero, straight from the integer domain.
func (a Accumulator) Finalize() (Summary, error) {
	if a.Empty() {
		return Summary{}, ErrEmptyAccumulator
	}
	return Summary{
		Min:   a.Min.Decimal().Round(outputPrecision),
		Max:   a.Max.Decimal().Round(outputPrecision),
		Mean:  decimal.NewFromInt(a.Sum).DivRound(ten.Mul(decimal.NewFromInt(int64(a.Count))), outputPrecision),
		Count: a.Count,
	}, nil
}

// Finalize produces the summaries of every station in t, ordered by key bytes.
// Borrowed keys are cloned so the result does not pin the input buffer.
func Finalize(t Table) ([]StationSummary, error) {
	out := make([]StationSummary, 0, t.Len())
	var err error
	t.Range(func(key string, acc *Accumulator) bool {
		var s Summary
		s, err = acc.Finalize()
		if err != nil {
			err = fmt.Errorf("station %q: %w", key, err)
			return false
		}
		if t.KeyMode() == KeyBorrowed {
			key = strings.Clone(key)
		}
		out = append(out, StationSummary{Station: key, Summary: s})
		return true
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b StationSummary) int {
		return strings.Compare(a.Station, b.Station)
	})
	return out, nil
}

package aggregation

import (
	"github.com/shopspring/decimal"
)

// Summary is the finalized view of an accumulator, rounded to one decimal digit.
type Summary struct {
	Min   decimal.Decimal
	Max   decimal.Decimal
	Mean  decimal.Decimal
	Count uint64
}

// StationSummary pairs a station key with its summary.
type StationSummary struct {
	Station string
	Summary
}

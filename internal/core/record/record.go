package record

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Delimiter separates the station key from its measurement.
const Delimiter = ';'

// MaxAbsTenths bounds the magnitude of a single measurement (100000.0).
// The accumulator sum width is chosen against this bound.
const MaxAbsTenths = 1_000_000

// maxCanonicalDigits keeps the fast path well inside int64 before the range check.
const maxCanonicalDigits = 12

// maxMagnitudeDigits is the integer digit count above which a value is out of
// range without further arithmetic. MaxAbsTenths/10 has six.
const maxMagnitudeDigits = 7

var (
	// ErrMalformedRecord is returned for a line without a delimiter, with an empty key,
	// or whose value is not a finite decimal number.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrValueOutOfRange is returned for a finite value whose magnitude exceeds MaxAbsTenths.
	ErrValueOutOfRange = fmt.Errorf("%w: value out of range", ErrMalformedRecord)
)

// Tenths is a fixed-point measurement scaled by 10 (23.7 -> 237).
type Tenths int64

// Decimal returns the exact decimal value of t.
func (t Tenths) Decimal() decimal.Decimal {
	return decimal.New(int64(t), -1)
}

func (t Tenths) String() string {
	return string(AppendTenths(nil, t))
}

// AppendTenths appends t in its one-fractional-digit form ("-6.9") to dst.
func AppendTenths(dst []byte, t Tenths) []byte {
	v := int64(t)
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}
	dst = strconv.AppendInt(dst, v/10, 10)
	return append(dst, '.', byte('0'+v%10))
}

// Record is one parsed line. Key aliases the input line.
type Record struct {
	Key   []byte
	Value Tenths
}

// ParseLine splits line on the first delimiter and parses the value.
// The caller is responsible for not passing blank lines.
func ParseLine(line []byte) (Record, error) {
	sep := bytes.IndexByte(line, Delimiter)
	if sep < 0 {
		return Record{}, fmt.Errorf("%w: missing %q delimiter", ErrMalformedRecord, Delimiter)
	}
	if sep == 0 {
		return Record{}, fmt.Errorf("%w: empty key", ErrMalformedRecord)
	}

	value, err := ParseTenths(line[sep+1:])
	if err != nil {
		return Record{}, err
	}
	return Record{Key: line[:sep], Value: value}, nil
}

// ParseTenths converts a decimal value to tenths.
// The canonical one-fractional-digit form ("-12.3") is parsed without allocation.
// Any other finite decimal ("12", "12.34", "1.5e1") is rounded half away from zero.
func ParseTenths(b []byte) (Tenths, error) {
	if v, ok := parseCanonical(b); ok {
		if v > MaxAbsTenths || v < -MaxAbsTenths {
			return 0, fmt.Errorf("%w: %q", ErrValueOutOfRange, b)
		}
		return Tenths(v), nil
	}
	return parseDecimal(b)
}

func parseCanonical(b []byte) (int64, bool) {
	n := len(b)
	start := 0
	if n > 0 && b[0] == '-' {
		start = 1
	}
	intDigits := n - 2 - start
	if intDigits < 1 || intDigits > maxCanonicalDigits || b[n-2] != '.' {
		return 0, false
	}

	var v int64
	for i := start; i < n-2; i++ {
		c := b[i] - '0'
		if c > 9 {
			return 0, false
		}
		v = v*10 + int64(c)
	}
	c := b[n-1] - '0'
	if c > 9 {
		return 0, false
	}
	v = v*10 + int64(c)

	if start == 1 {
		v = -v
	}
	return v, true
}

func parseDecimal(b []byte) (Tenths, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("%w: empty value", ErrMalformedRecord)
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return 0, fmt.Errorf("%w: value %q: %v", ErrMalformedRecord, b, err)
	}

	// Rescaling costs grow with the exponent, so settle extreme magnitudes
	// from the digit count alone: |d| lies in [10^(m-1), 10^m).
	if d.IsZero() {
		return 0, nil
	}
	m := int64(d.Exponent()) + int64(d.NumDigits())
	switch {
	case m > maxMagnitudeDigits:
		return 0, fmt.Errorf("%w: %q", ErrValueOutOfRange, b)
	case m < -1:
		// |d| < 0.01 rounds to zero tenths.
		return 0, nil
	}

	scaled := d.Shift(1).Round(0)
	if scaled.Abs().GreaterThan(decimal.NewFromInt(MaxAbsTenths)) {
		return 0, fmt.Errorf("%w: %q", ErrValueOutOfRange, b)
	}
	return Tenths(scaled.IntPart()), nil
}

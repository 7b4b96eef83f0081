package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantKey   string
		wantValue Tenths
		wantErr   error
	}{
		{name: "positive", line: "Hamburg;12.0", wantKey: "Hamburg", wantValue: 120},
		{name: "negative", line: "Anadyr;-6.9", wantKey: "Anadyr", wantValue: -69},
		{name: "zero", line: "Zürich;0.0", wantKey: "Zürich", wantValue: 0},
		{name: "negative zero", line: "Oslo;-0.0", wantKey: "Oslo", wantValue: 0},
		{name: "key with spaces and comma", line: "Washington, D.C.;14.6", wantKey: "Washington, D.C.", wantValue: 146},
		{name: "splits on first delimiter only", line: "A;1.0;2.0", wantErr: ErrMalformedRecord},
		{name: "missing delimiter", line: "Hamburg 12.0", wantErr: ErrMalformedRecord},
		{name: "empty key", line: ";12.0", wantErr: ErrMalformedRecord},
		{name: "empty value", line: "Hamburg;", wantErr: ErrMalformedRecord},
		{name: "not a number", line: "Hamburg;warm", wantErr: ErrMalformedRecord},
		{name: "trailing garbage", line: "Hamburg;12.0x", wantErr: ErrMalformedRecord},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ParseLine([]byte(tc.line))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantKey, string(rec.Key))
			require.Equal(t, tc.wantValue, rec.Value)
		})
	}
}

func TestParseTenths(t *testing.T) {
	tests := []struct {
		input   string
		want    Tenths
		wantErr error
	}{
		{input: "23.7", want: 237},
		{input: "-99.9", want: -999},
		{input: "5.3", want: 53},
		{input: "12", want: 120},
		{input: "12.34", want: 123},
		{input: "12.35", want: 124},
		{input: "-12.35", want: -124},
		{input: "1.5e1", want: 150},
		{input: "100000.0", want: MaxAbsTenths},
		{input: "-100000.0", want: -MaxAbsTenths},
		{input: "100000.1", wantErr: ErrValueOutOfRange},
		{input: "9999999999999999.9", wantErr: ErrValueOutOfRange},
		{input: "1e300", wantErr: ErrValueOutOfRange},
		{input: "1e10000000", wantErr: ErrValueOutOfRange},
		{input: "-1e10000000", wantErr: ErrValueOutOfRange},
		{input: "1e-10000000", want: 0},
		{input: "0e10000000", want: 0},
		{input: "0.004", want: 0},
		{input: "0.05", want: 1},
		{input: "-0.05", want: -1},
		{input: "1000000e-1", want: MaxAbsTenths},
		{input: "NaN", wantErr: ErrMalformedRecord},
		{input: "-", wantErr: ErrMalformedRecord},
		{input: ".", wantErr: ErrMalformedRecord},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseTenths([]byte(tc.input))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseTenths_ExtremeExponentsStayCheap(t *testing.T) {
	inputs := []string{"1e10000000", "-1e10000000", "1e-10000000", "9.9e-999999999", "1e999999999"}

	start := time.Now()
	for i := 0; i < 100; i++ {
		for _, in := range inputs {
			_, _ = ParseTenths([]byte(in))
		}
	}
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestErrValueOutOfRange_IsMalformed(t *testing.T) {
	_, err := ParseTenths([]byte("250000.0"))
	require.ErrorIs(t, err, ErrValueOutOfRange)
	require.ErrorIs(t, err, ErrMalformedRecord)
}

func TestTenths_String(t *testing.T) {
	require.Equal(t, "23.7", Tenths(237).String())
	require.Equal(t, "-0.5", Tenths(-5).String())
	require.Equal(t, "0.0", Tenths(0).String())
	require.Equal(t, "12.0", Tenths(120).String())
}

func TestAppendTenths(t *testing.T) {
	tests := []struct {
		value Tenths
		want  string
	}{
		{value: 0, want: "0.0"},
		{value: 5, want: "0.5"},
		{value: -5, want: "-0.5"},
		{value: 237, want: "23.7"},
		{value: -999, want: "-99.9"},
		{value: MaxAbsTenths, want: "100000.0"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := AppendTenths([]byte("x="), tc.value)
			require.Equal(t, "x="+tc.want, string(got))

			parsed, err := ParseTenths(got[2:])
			require.NoError(t, err)
			require.Equal(t, tc.value, parsed)
		})
	}
}

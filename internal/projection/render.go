package projection

import (
	"bufio"
	"io"
	"strings"

	v1 "github.com/aevon-lab/obrc/internal/api/v1"
	coreagg "github.com/aevon-lab/obrc/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// outputPlaces is the number of fractional digits every rendered value carries.
const outputPlaces = 1

// AppendLine appends "station=min/max/mean\n" to dst.
func AppendLine(dst []byte, station string, min, max, mean decimal.Decimal) []byte {
	dst = append(dst, station...)
	dst = append(dst, '=')
	dst = append(dst, min.StringFixed(outputPlaces)...)
	dst = append(dst, '/')
	dst = append(dst, max.StringFixed(outputPlaces)...)
	dst = append(dst, '/')
	dst = append(dst, mean.StringFixed(outputPlaces)...)
	return append(dst, '\n')
}

// Write renders engine summaries one line per station, in the order given.
func Write(w io.Writer, stations []coreagg.StationSummary) error {
	bw := bufio.NewWriter(w)
	var line []byte
	for _, s := range stations {
		line = AppendLine(line[:0], s.Station, s.Min, s.Max, s.Mean)
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRun renders a stored run in the same format as Write.
func WriteRun(w io.Writer, run *v1.Run) error {
	bw := bufio.NewWriter(w)
	var line []byte
	for _, s := range run.Stations {
		line = AppendLine(line[:0], s.Station, s.Min, s.Max, s.Mean)
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Render returns the full output as a string.
func Render(stations []coreagg.StationSummary) string {
	var sb strings.Builder
	_ = Write(&sb, stations)
	return sb.String()
}

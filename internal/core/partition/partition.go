package partition

import "bytes"

// Range is a half-open byte range [Start, End) of the input holding whole lines.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Split divides input into at most n contiguous, non-overlapping ranges of roughly
// equal size. Every boundary falls right after a newline, so no line is cut.
// Empty input yields no ranges.
func Split(input []byte, n int) []Range {
	if len(input) == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	size := len(input) / n
	if size < 1 {
		size = 1
	}

	ranges := make([]Range, 0, n)
	start := 0
	for start < len(input) {
		end := start + size
		if end >= len(input) || len(ranges) == n-1 {
			end = len(input)
		} else if nl := bytes.IndexByte(input[end-1:], '\n'); nl < 0 {
			end = len(input)
		} else {
			end += nl
		}
		ranges = append(ranges, Range{Start: start, End: end})
		start = end
	}
	return ranges
}

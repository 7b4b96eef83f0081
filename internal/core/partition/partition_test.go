package partition

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireCovers(t *testing.T, input []byte, ranges []Range) {
	t.Helper()
	require.NotEmpty(t, ranges)
	require.Equal(t, 0, ranges[0].Start)
	require.Equal(t, len(input), ranges[len(ranges)-1].End)
	for i, r := range ranges {
		require.Greater(t, r.Len(), 0, "range %d is empty", i)
		if i > 0 {
			require.Equal(t, ranges[i-1].End, r.Start, "range %d is not contiguous", i)
			require.Equal(t, byte('\n'), input[r.Start-1], "range %d does not start on a line boundary", i)
		}
	}
}

func TestSplit_AlignsToLines(t *testing.T) {
	input := []byte("Hamburg;12.0\nBulawayo;8.9\nPalembang;38.8\nSt. John's;15.2\nCracow;12.6\nBridgetown;26.9\n")

	for n := 1; n <= 10; n++ {
		ranges := Split(input, n)
		require.LessOrEqual(t, len(ranges), n)
		requireCovers(t, input, ranges)

		var rebuilt strings.Builder
		for _, r := range ranges {
			rebuilt.Write(input[r.Start:r.End])
		}
		require.Equal(t, string(input), rebuilt.String())
	}
}

func TestSplit_NoTrailingNewline(t *testing.T) {
	input := []byte("A;1.0\nB;2.0\nC;3.0")

	ranges := Split(input, 3)
	requireCovers(t, input, ranges)
	require.Equal(t, "C;3.0", string(input[ranges[len(ranges)-1].Start:]))
}

func TestSplit_MorePartitionsThanLines(t *testing.T) {
	input := []byte("A;1.0\nB;2.0\n")

	ranges := Split(input, 64)
	requireCovers(t, input, ranges)
	require.Len(t, ranges, 2)
}

func TestSplit_SingleLongLine(t *testing.T) {
	input := []byte("Antananarivo;17.9")

	ranges := Split(input, 4)
	require.Equal(t, []Range{{Start: 0, End: len(input)}}, ranges)
}

func TestSplit_Degenerate(t *testing.T) {
	require.Nil(t, Split(nil, 4))
	require.Nil(t, Split([]byte{}, 4))

	input := []byte("A;1.0\n")
	require.Equal(t, []Range{{Start: 0, End: len(input)}}, Split(input, 0))
	require.Equal(t, []Range{{Start: 0, End: len(input)}}, Split(input, -3))
}

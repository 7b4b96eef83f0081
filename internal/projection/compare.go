package projection

import (
	"github.com/andreyvit/diff"
)

// Compare reports whether actual matches expected, ignoring whitespace
// around each line (which covers CRLF endings). On mismatch it returns a
// line diff with "-" for expected lines and "+" for actual lines.
func Compare(expected, actual string) (string, bool) {
	e := diff.TrimLinesInString(expected)
	a := diff.TrimLinesInString(actual)
	if e == a {
		return "", true
	}
	return diff.LineDiff(e, a), false
}

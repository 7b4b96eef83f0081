package aggregation

import "fmt"

// ParsePolicy decides what happens to a malformed line.
type ParsePolicy int

const (
	// PolicySkip drops the line, counts it and keeps going. No accumulator is touched.
	PolicySkip ParsePolicy = iota
	// PolicyStrict aborts the whole run on the first malformed line.
	PolicyStrict
)

// ParseParsePolicy maps a config value to a ParsePolicy.
func ParseParsePolicy(s string) (ParsePolicy, error) {
	switch s {
	case "skip", "":
		return PolicySkip, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return 0, fmt.Errorf("unsupported parse policy %q", s)
	}
}

func (p ParsePolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

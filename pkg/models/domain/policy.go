package domain

import "fmt"

// MissingValuePolicy decides how a ratio that could not be computed is surfaced.
type MissingValuePolicy int

const (
	// ZeroDefault reports the safe zero. Used for internal scoring.
	ZeroDefault MissingValuePolicy = iota
	// NullPropagate reports no value. Used for anything rendered to end users.
	NullPropagate
)

func ParseMissingValuePolicy(s string) (MissingValuePolicy, error) {
	switch s {
	case "zero", "zero_default":
		return ZeroDefault, nil
	case "", "null", "null_propagate":
		return NullPropagate, nil
	default:
		return ZeroDefault, fmt.Errorf("unknown missing value policy %q", s)
	}
}

func (p MissingValuePolicy) String() string {
	if p == NullPropagate {
		return "null"
	}
	return "zero"
}

// Apply renders value under the policy. defaulted marks a value that is the safe zero.
func (p MissingValuePolicy) Apply(value float64, defaulted bool) *float64 {
	if defaulted && p == NullPropagate {
		return nil
	}
	return &value
}

package rsutax

import (
	"fmt"
	"strings"
)

// MatchingMethod defines how the lots sold are chosen.
type MatchingMethod int

const (
	// Optionality sells first the lots that already benefit from a rebate, then the lots whose
	// taxable base is the farthest from the current price, keeping the most valuable tax
	// optionality for later sales.
	Optionality MatchingMethod = iota
	// Greedy sells first the lots with the lowest tax per share.
	Greedy
	// FIFO (First-In, First-Out) sells the oldest lots first.
	FIFO
)

// MatchingMethods lists all the methods.
var MatchingMethods = []MatchingMethod{Optionality, Greedy, FIFO}

func (m MatchingMethod) String() string {
	switch m {
	case Optionality:
		return "optionality"
	case Greedy:
		return "greedy"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// ParseMatchingMethod parses a string into a MatchingMethod.
func ParseMatchingMethod(s string) (MatchingMethod, error) {
	switch strings.ToLower(s) {
	case "optionality":
		return Optionality, nil
	case "greedy":
		return Greedy, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown matching method: %q", s)
	}
}

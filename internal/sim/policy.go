package sim

import (
	"fmt"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// Policy decides what Tick does with a step that produced NaN or Inf.
type Policy int

const (
	// PolicyFreeze keeps the last finite state.
	PolicyFreeze Policy = iota
	// PolicyPropagate accepts the non-finite state.
	PolicyPropagate
)

func (p Policy) String() string {
	switch p {
	case PolicyFreeze:
		return "freeze"
	case PolicyPropagate:
		return "propagate"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "freeze", "":
		return PolicyFreeze, nil
	case "propagate":
		return PolicyPropagate, nil
	}
	return PolicyFreeze, fmt.Errorf("%q: %w", s, dynamo.ErrUnknownPolicy)
}

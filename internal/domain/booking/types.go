package booking

import (
	"strings"

	"lendly/internal/pkg/errs"
)

var ErrUnsupportedState = errs.New("unsupported booking state")

// Status is the lifecycle status of a booking. Transitions are one-shot:
// WAITING may move to APPROVED or REJECTED, both of which are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// State is the client-selected query bucket for booking listings. CURRENT,
// PAST and FUTURE classify against "now"; WAITING and REJECTED filter on the
// status field directly.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState matches case-insensitively against the closed set of recognized
// states. Empty input means ALL; anything else unknown is rejected.
func ParseState(raw string) (State, error) {
	if raw == "" {
		return StateAll, nil
	}
	switch State(strings.ToUpper(raw)) {
	case StateAll:
		return StateAll, nil
	case StateCurrent:
		return StateCurrent, nil
	case StatePast:
		return StatePast, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	default:
		return "", errs.Wrapf(ErrUnsupportedState, "unknown state: %s", raw)
	}
}

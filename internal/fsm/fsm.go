package fsm

// Status constants used by the booking state machine.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusApproved: {},
		StatusRejected: {},
	},
	StatusApproved: {
		StatusCancelled: {},
	},
	StatusRejected:  {},
	StatusCancelled: {},
}

// CanTransition returns whether a booking can move from the current status to
// the target status. Same-status transitions are allowed so that retries stay
// idempotent.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsKnown reports whether s is one of the booking statuses.
func IsKnown(s string) bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition except deletion is possible.
func Terminal(s string) bool {
	return len(transitions[s]) == 0
}

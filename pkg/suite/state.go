package suite

// State is the lifecycle state of a Manager.
type State int

const (
	StateUninitialized State = iota
	StateActive
	StateTerminated
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

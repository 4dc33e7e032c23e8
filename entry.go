package singlet

type entryState uint8

const (
	statePending entryState = iota
	stateInProgress
	stateResolved
)

func (s entryState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateInProgress:
		return "in progress"
	case stateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// entry is one registry slot. Exactly one of factory/value is meaningful,
// depending on the state:
//   - statePending: factory holds the one-shot constructor
//   - stateInProgress: neither, the slot is a marker
//   - stateResolved: value holds the memoized instance
//
// typeName is the diagnostic label attached at registration, carried
// through every state so error messages can name the contract.
type entry struct {
	state    entryState
	typeName string
	factory  factory
	value    any
}

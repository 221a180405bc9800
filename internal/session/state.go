package session

// State is the session lifecycle state. StateUnknown lasts only until the
// startup resolution completes; afterwards the manager is always in one of
// the two terminal states.
type State string

const (
	StateUnknown         State = "unknown"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

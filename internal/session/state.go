package session

// session lifecycle state
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// everything that can happen to a session. mount, the redirect handler,
// the reconciliation timer, and storage-change notifications all submit
// events instead of mutating state, so trigger ordering cannot corrupt
// the machine.
type eventKind int

const (
	// a profile load began
	eventLoadStarted eventKind = iota

	// a profile arrived, inline or fetched
	eventProfileLoaded

	// the credential was rejected; it has already been evicted
	eventAuthFailed

	// the user signed out
	eventSignedOut

	// the token store turned up empty while state claimed otherwise
	eventTokenMissing

	// the provider flow failed; no credential was ever persisted
	eventOAuthFailed

	// a load failed transiently; fall back to whatever held before
	eventLoadAborted
)

// the single transition function. prior is the state that held before
// the in-flight load, used when a transient failure aborts it.
func transition(current, prior State, kind eventKind) State {
	switch kind {
	case eventLoadStarted:
		return StateLoading
	case eventProfileLoaded:
		return StateAuthenticated
	case eventAuthFailed, eventSignedOut, eventTokenMissing, eventOAuthFailed:
		return StateAnonymous
	case eventLoadAborted:
		if current == StateLoading {
			return prior
		}
		return current
	default:
		return current
	}
}

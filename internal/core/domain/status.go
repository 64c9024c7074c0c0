package domain

// ReferenceState describes where a reference stands between two runs.
type ReferenceState uint8

const (
	// StatePending is a raw reference that the next run will render or splice.
	StatePending ReferenceState = iota + 1
	// StateRendered is a spliced link whose artifact is on disk.
	StateRendered
	// StateStale is a spliced link whose artifact is missing.
	StateStale
)

// String returns a short label for the state.
func (s ReferenceState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRendered:
		return "rendered"
	case StateStale:
		return "stale"
	default:
		return "unknown"
	}
}

// ReferenceStatus is one line of a status listing.
type ReferenceStatus struct {
	Document     string
	URL          string
	ArtifactPath string
	State        ReferenceState
	// Cached is set on pending references whose artifact can be reused without rendering.
	Cached bool
}

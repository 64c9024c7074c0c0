package domain

// Outcome is the terminal state of one reference within a run.
type Outcome uint8

const (
	// OutcomeCacheHit means the cached artifact was reused.
	OutcomeCacheHit Outcome = iota + 1
	// OutcomeRendered means a new artifact was produced and spliced in.
	OutcomeRendered
	// OutcomeFailed means the reference was skipped after a recoverable error.
	OutcomeFailed
)

// String returns a short label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCacheHit:
		return "cached"
	case OutcomeRendered:
		return "rendered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReferenceResult records what happened to one reference.
type ReferenceResult struct {
	Match        ReferenceMatch
	Outcome      Outcome
	ArtifactPath string
	Err          error
}

// Report summarizes one document run.
type Report struct {
	Document      string
	References    []ReferenceResult
	DocumentSaved bool
	CacheSaved    bool
}

// Count returns how many references ended in the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, ref := range r.References {
		if ref.Outcome == o {
			n++
		}
	}
	return n
}

package domain

import "strings"

// DefaultHost is the diagram editor host whose links are recognised.
const DefaultHost = "q.uiver.app"

// FragmentKey is the URL fragment key that carries the payload.
const FragmentKey = "#q="

// Span is a half-open byte range [Start, End) within a document.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// ReferenceMatch is a raw diagram reference found by a scan.
type ReferenceMatch struct {
	URL     string
	Payload string
	Span    Span
}

// ReferenceURL builds the reference URL for a payload on the given host.
func ReferenceURL(host, payload string) string {
	var b strings.Builder
	b.Grow(len("https://") + len(host) + 1 + len(FragmentKey) + len(payload))
	b.WriteString("https://")
	b.WriteString(host)
	b.WriteString("/")
	b.WriteString(FragmentKey)
	b.WriteString(payload)
	return b.String()
}

// RenderRequest is handed to the render collaborator for one reference.
type RenderRequest struct {
	// URL is the original reference URL.
	URL string
	// Graph is the decoded diagram.
	Graph DiagramGraph
	// Dest is the path the artifact must be written to.
	Dest string
}

// DiagramLink is a reference that has already been replaced by an artifact link.
type DiagramLink struct {
	// URL is the reference URL the outer link points to.
	URL string
	// ImagePath is the artifact path the inner image shows.
	ImagePath string
}

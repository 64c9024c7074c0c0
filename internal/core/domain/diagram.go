// Package domain contains the core domain models for diagram references, their
// rendered artifacts, and the cache that ties the two together.
package domain

// DiagramGraph is the structured form of one diagram.
type DiagramGraph struct {
	Nodes []Node
	Edges []Edge
}

// Node is a labelled vertex placed on the diagram grid.
// ID is the node's 0-based position in the wire payload.
type Node struct {
	ID    int
	X     float64
	Y     float64
	Label string
}

// Edge connects two nodes. Label and Style are optional.
type Edge struct {
	ID     int
	Source int
	Target int
	Label  string
	Style  *EdgeStyle
}

// EdgeStyle holds the optional presentation fields of an edge.
// A style with no field set is treated as absent.
type EdgeStyle struct {
	BodyName *string
	HeadName *string
	Offset   *float64
}

// IsEmpty reports whether no style field is set. A nil style is empty.
func (s *EdgeStyle) IsEmpty() bool {
	return s == nil || (s.BodyName == nil && s.HeadName == nil && s.Offset == nil)
}

// Normalize returns nil for an empty style and the style itself otherwise.
func (s *EdgeStyle) Normalize() *EdgeStyle {
	if s.IsEmpty() {
		return nil
	}
	return s
}

// NodeByID returns the node with the given id.
func (g *DiagramGraph) NodeByID(id int) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

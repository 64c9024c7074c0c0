// Package codec converts between the compact diagram wire payload and domain.DiagramGraph.
//
// The payload is base64 of a UTF-8 JSON array:
//
//	[version, nodeCount, node_0, ..., node_{n-1}, edge_0, ..., edge_m]
//	node = [x, y, label]
//	edge = [source, target, label?, style?]
//	style = {"body": {"name": ...}, "head": {"name": ...}, "offset": ...}
package codec

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/zerr"
)

// Version is the wire format version written by Encode.
const Version = 0

// Decode parses a payload into a diagram graph.
func Decode(payload string) (domain.DiagramGraph, error) {
	raw, err := decodeBase64(payload)
	if err != nil {
		return domain.DiagramGraph{}, err
	}

	var elems []any
	if err := json.Unmarshal(raw, &elems); err != nil {
		if json.Valid(raw) && !opensArray(raw) {
			return domain.DiagramGraph{}, domain.ErrInvalidShape
		}
		return domain.DiagramGraph{}, zerr.Wrap(err, domain.ErrInvalidJSON.Error())
	}
	if len(elems) < 2 {
		return domain.DiagramGraph{}, zerr.With(domain.ErrInvalidShape, "length", len(elems))
	}

	count, ok := asInt(elems[1])
	if !ok || count < 0 || count > len(elems)-2 {
		return domain.DiagramGraph{}, zerr.With(domain.ErrInvalidNodeCount, "value", elems[1])
	}

	g := domain.DiagramGraph{
		Nodes: make([]domain.Node, 0, count),
		Edges: make([]domain.Edge, 0, len(elems)-2-count),
	}

	for i := range count {
		node, err := decodeNode(i, elems[2+i])
		if err != nil {
			return domain.DiagramGraph{}, err
		}
		g.Nodes = append(g.Nodes, node)
	}

	for i, elem := range elems[2+count:] {
		edge, err := decodeEdge(i, elem)
		if err != nil {
			return domain.DiagramGraph{}, err
		}
		g.Edges = append(g.Edges, edge)
	}

	return g, nil
}

// Encode serializes a graph into a payload. It is the inverse of Decode.
func Encode(g domain.DiagramGraph) (string, error) {
	elems := make([]any, 0, 2+len(g.Nodes)+len(g.Edges))
	elems = append(elems, Version, len(g.Nodes))

	for _, n := range g.Nodes {
		elems = append(elems, []any{n.X, n.Y, n.Label})
	}

	// The wire format addresses nodes by position.
	position := make(map[int]int, len(g.Nodes))
	for i, n := range g.Nodes {
		position[n.ID] = i
	}

	for _, e := range g.Edges {
		elems = append(elems, encodeEdge(e, position))
	}

	raw, err := json.Marshal(elems)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrEncodeFailed.Error())
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// Validate reports whether g is well formed: node ids are unique, edge
// endpoints reference existing nodes, numbers are finite, and present styles
// carry at least one field.
func Validate(g domain.DiagramGraph) bool {
	ids := make(map[int]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := ids[n.ID]; dup {
			return false
		}
		if !finite(n.X) || !finite(n.Y) {
			return false
		}
		ids[n.ID] = struct{}{}
	}

	for _, e := range g.Edges {
		if _, ok := ids[e.Source]; !ok {
			return false
		}
		if _, ok := ids[e.Target]; !ok {
			return false
		}
		if e.Style != nil {
			if e.Style.IsEmpty() {
				return false
			}
			if e.Style.Offset != nil && !finite(*e.Style.Offset) {
				return false
			}
		}
	}
	return true
}

func encodeEdge(e domain.Edge, position map[int]int) []any {
	out := []any{nodeIndex(e.Source, position), nodeIndex(e.Target, position)}
	style := e.Style.Normalize()

	switch {
	case style != nil:
		out = append(out, e.Label, encodeStyle(style))
	case e.Label != "":
		out = append(out, e.Label)
	}
	return out
}

func nodeIndex(id int, position map[int]int) int {
	if i, ok := position[id]; ok {
		return i
	}
	return id
}

func encodeStyle(s *domain.EdgeStyle) map[string]any {
	m := make(map[string]any, 3)
	if s.BodyName != nil {
		m["body"] = map[string]any{"name": *s.BodyName}
	}
	if s.HeadName != nil {
		m["head"] = map[string]any{"name": *s.HeadName}
	}
	if s.Offset != nil {
		m["offset"] = *s.Offset
	}
	return m
}

func decodeBase64(payload string) ([]byte, error) {
	trimmed := strings.TrimRight(payload, "=")
	if trimmed == "" {
		return nil, zerr.With(domain.ErrInvalidBase64, "payload", payload)
	}
	if raw, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return raw, nil
	}
	raw, err := base64.RawStdEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidBase64.Error()), "payload", payload)
	}
	return raw, nil
}

func decodeNode(index int, elem any) (domain.Node, error) {
	arr, ok := elem.([]any)
	if !ok || len(arr) < 3 {
		return domain.Node{}, zerr.With(domain.ErrInvalidNode, "node", index)
	}
	x, okX := arr[0].(float64)
	y, okY := arr[1].(float64)
	label, okL := arr[2].(string)
	if !okX || !okY || !okL {
		return domain.Node{}, zerr.With(domain.ErrInvalidNode, "node", index)
	}
	return domain.Node{ID: index, X: x, Y: y, Label: label}, nil
}

func decodeEdge(index int, elem any) (domain.Edge, error) {
	arr, ok := elem.([]any)
	if !ok || len(arr) < 2 {
		return domain.Edge{}, zerr.With(domain.ErrInvalidEdge, "edge", index)
	}
	source, okS := asInt(arr[0])
	target, okT := asInt(arr[1])
	if !okS || !okT {
		return domain.Edge{}, zerr.With(domain.ErrInvalidEdge, "edge", index)
	}

	edge := domain.Edge{ID: index, Source: source, Target: target}

	if len(arr) > 2 && arr[2] != nil {
		label, ok := arr[2].(string)
		if !ok {
			return domain.Edge{}, zerr.With(domain.ErrInvalidEdgeLabel, "edge", index)
		}
		edge.Label = label
	}

	if len(arr) > 3 && arr[3] != nil {
		style, err := decodeStyle(arr[3])
		if err != nil {
			return domain.Edge{}, zerr.With(err, "edge", index)
		}
		edge.Style = style.Normalize()
	}

	return edge, nil
}

func decodeStyle(v any) (*domain.EdgeStyle, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, domain.ErrInvalidEdgeStyle
	}

	style := &domain.EdgeStyle{}

	if body, present := m["body"]; present {
		name, ok, err := styleName(body)
		if err != nil {
			return nil, zerr.With(err, "field", "body")
		}
		if ok {
			style.BodyName = &name
		}
	}

	if head, present := m["head"]; present {
		name, ok, err := styleName(head)
		if err != nil {
			return nil, zerr.With(err, "field", "head")
		}
		if ok {
			style.HeadName = &name
		}
	}

	if raw, present := m["offset"]; present {
		offset, ok := raw.(float64)
		if !ok {
			return nil, zerr.With(domain.ErrInvalidEdgeStyle, "field", "offset")
		}
		style.Offset = &offset
	}

	return style, nil
}

// styleName extracts {"name": "..."}. Objects without a name are ignored;
// the editor stores other settings next to it.
func styleName(v any) (string, bool, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false, domain.ErrInvalidEdgeStyle
	}
	raw, present := m["name"]
	if !present {
		return "", false, nil
	}
	name, ok := raw.(string)
	if !ok {
		return "", false, domain.ErrInvalidEdgeStyle
	}
	return name, true, nil
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || !finite(f) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// opensArray reports whether the first non-space byte of raw is '['.
func opensArray(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}

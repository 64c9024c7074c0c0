package app

import (
	"io"
	"strings"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/engine/codec"
	"go.trai.ch/qsnap/internal/engine/fingerprint"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type graphDTO struct {
	Fingerprint string    `yaml:"fingerprint"`
	Nodes       []nodeDTO `yaml:"nodes"`
	Edges       []edgeDTO `yaml:"edges,omitempty"`
}

type nodeDTO struct {
	ID    int     `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Label string  `yaml:"label"`
}

type edgeDTO struct {
	ID     int       `yaml:"id"`
	Source int       `yaml:"source"`
	Target int       `yaml:"target"`
	Label  string    `yaml:"label,omitempty"`
	Style  *styleDTO `yaml:"style,omitempty"`
}

type styleDTO struct {
	Body   *string  `yaml:"body,omitempty"`
	Head   *string  `yaml:"head,omitempty"`
	Offset *float64 `yaml:"offset,omitempty"`
}

// Decode writes the diagram carried by a reference URL or a bare payload to w as YAML.
func (a *App) Decode(w io.Writer, input string) error {
	input = strings.TrimSpace(input)
	payload := input
	if _, after, found := strings.Cut(input, domain.FragmentKey); found {
		payload = after
	}

	g, err := codec.Decode(payload)
	if err != nil {
		return domain.NewDecodeError(input, err)
	}

	dto := graphDTO{Fingerprint: fingerprint.Of(g)}
	for _, n := range g.Nodes {
		dto.Nodes = append(dto.Nodes, nodeDTO{ID: n.ID, X: n.X, Y: n.Y, Label: n.Label})
	}
	for _, e := range g.Edges {
		edge := edgeDTO{ID: e.ID, Source: e.Source, Target: e.Target, Label: e.Label}
		if s := e.Style.Normalize(); s != nil {
			edge.Style = &styleDTO{Body: s.BodyName, Head: s.HeadName, Offset: s.Offset}
		}
		dto.Edges = append(dto.Edges, edge)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(dto); err != nil {
		return zerr.Wrap(err, "failed to write diagram")
	}
	return enc.Close()
}

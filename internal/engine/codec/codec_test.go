package codec_test

import (
	"encoding/base64"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/engine/codec"
)

func ptr[T any](v T) *T { return &v }

func encodeJSON(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestDecode_ExamplePayload(t *testing.T) {
	t.Parallel()

	g, err := codec.Decode(encodeJSON(`[0,2,[0,0,"A"],[1,0,"B"],[0,1,"f"]]`))
	require.NoError(t, err)

	assert.Equal(t, domain.DiagramGraph{
		Nodes: []domain.Node{
			{ID: 0, X: 0, Y: 0, Label: "A"},
			{ID: 1, X: 1, Y: 0, Label: "B"},
		},
		Edges: []domain.Edge{{ID: 0, Source: 0, Target: 1, Label: "f"}},
	}, g)
}

func TestDecode_AcceptsPaddingAndStandardAlphabet(t *testing.T) {
	t.Parallel()

	// The label encodes to characters that differ between the two alphabets.
	raw := []byte(`[0,1,[0,0,"~~~???"]]`)

	for name, payload := range map[string]string{
		"url raw": base64.RawURLEncoding.EncodeToString(raw),
		"url pad": base64.URLEncoding.EncodeToString(raw),
		"std raw": base64.RawStdEncoding.EncodeToString(raw),
		"std pad": base64.StdEncoding.EncodeToString(raw),
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			g, err := codec.Decode(payload)
			require.NoError(t, err)
			require.Len(t, g.Nodes, 1)
			assert.Equal(t, "~~~???", g.Nodes[0].Label)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"empty", "", "payload is not valid base64"},
		{"bad base64", "!!!!", "payload is not valid base64"},
		{"not json", encodeJSON("not json"), "payload is not valid json"},
		{"object", encodeJSON(`{"a":1}`), "payload must be an array of at least two elements"},
		{"short array", encodeJSON(`[0]`), "payload must be an array of at least two elements"},
		{"count not a number", encodeJSON(`[0,"2"]`), "payload node count is invalid"},
		{"count fractional", encodeJSON(`[0,1.5,[0,0,"A"]]`), "payload node count is invalid"},
		{"count too large", encodeJSON(`[0,3,[0,0,"A"]]`), "payload node count is invalid"},
		{"count negative", encodeJSON(`[0,-1]`), "payload node count is invalid"},
		{"node not array", encodeJSON(`[0,1,"A"]`), "payload node must be [number, number, string]"},
		{"node short", encodeJSON(`[0,1,[0,0]]`), "payload node must be [number, number, string]"},
		{"node label number", encodeJSON(`[0,1,[0,0,1]]`), "payload node must be [number, number, string]"},
		{"node x string", encodeJSON(`[0,1,["0",0,"A"]]`), "payload node must be [number, number, string]"},
		{"edge not array", encodeJSON(`[0,1,[0,0,"A"],0]`), "payload edge must start with numeric source and target"},
		{"edge short", encodeJSON(`[0,1,[0,0,"A"],[0]]`), "payload edge must start with numeric source and target"},
		{"edge target string", encodeJSON(`[0,1,[0,0,"A"],[0,"0"]]`), "payload edge must start with numeric source and target"},
		{"edge label number", encodeJSON(`[0,1,[0,0,"A"],[0,0,7]]`), "payload edge label must be a string"},
		{"edge style array", encodeJSON(`[0,1,[0,0,"A"],[0,0,"",[]]]`), "payload edge style is invalid"},
		{"edge style offset", encodeJSON(`[0,1,[0,0,"A"],[0,0,"",{"offset":"x"}]]`), "payload edge style is invalid"},
		{"edge style body", encodeJSON(`[0,1,[0,0,"A"],[0,0,"",{"body":"dashed"}]]`), "payload edge style is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := codec.Decode(tt.payload)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDecode_Leniency(t *testing.T) {
	t.Parallel()

	g, err := codec.Decode(encodeJSON(
		`[3,2,[0,0,"A",{"extra":true}],[1,0,"B"],[0,1,null],[1,0,"g",{"body":{"name":"dashed","level":2},"head":{},"colour":[0,0,0]}],[0,1,"",{}]]`,
	))
	require.NoError(t, err)

	require.Len(t, g.Edges, 3)
	assert.Empty(t, g.Edges[0].Label)
	assert.Nil(t, g.Edges[0].Style)
	require.NotNil(t, g.Edges[1].Style)
	assert.Equal(t, "dashed", *g.Edges[1].Style.BodyName)
	assert.Nil(t, g.Edges[1].Style.HeadName)
	assert.Nil(t, g.Edges[2].Style, "empty style is normalized to absent")
}

func TestEncode_Shape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		edge domain.Edge
		want string
	}{
		{"bare", domain.Edge{Source: 0, Target: 1}, `[0,1]`},
		{"label", domain.Edge{Source: 0, Target: 1, Label: "f"}, `[0,1,"f"]`},
		{"style without label", domain.Edge{Source: 0, Target: 1, Style: &domain.EdgeStyle{Offset: ptr(2.0)}}, `[0,1,"",{"offset":2}]`},
		{"empty style dropped", domain.Edge{Source: 1, Target: 0, Style: &domain.EdgeStyle{}}, `[1,0]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			payload, err := codec.Encode(domain.DiagramGraph{
				Nodes: []domain.Node{{ID: 0, Label: "A"}, {ID: 1, X: 1, Label: "B"}},
				Edges: []domain.Edge{tt.edge},
			})
			require.NoError(t, err)
			assert.NotContains(t, payload, "=")

			raw, err := base64.RawURLEncoding.DecodeString(payload)
			require.NoError(t, err)
			assert.Equal(t, `[0,2,[0,0,"A"],[1,0,"B"],`+tt.want+`]`, string(raw))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	graphs := map[string]domain.DiagramGraph{
		"empty": {Nodes: []domain.Node{}, Edges: []domain.Edge{}},
		"nodes only": {
			Nodes: []domain.Node{{ID: 0, X: -1.5, Y: 2, Label: `\mathcal{C}`}},
			Edges: []domain.Edge{},
		},
		"styled": {
			Nodes: []domain.Node{
				{ID: 0, X: 0, Y: 0, Label: "A"},
				{ID: 1, X: 2, Y: 0, Label: "B"},
				{ID: 2, X: 1, Y: 1, Label: "C \"quoted\""},
			},
			Edges: []domain.Edge{
				{ID: 0, Source: 0, Target: 1, Label: "f"},
				{ID: 1, Source: 1, Target: 2, Style: &domain.EdgeStyle{HeadName: ptr("epi")}},
				{ID: 2, Source: 0, Target: 2, Label: "h", Style: &domain.EdgeStyle{
					BodyName: ptr("dashed"), HeadName: ptr("none"), Offset: ptr(-3.0),
				}},
				{ID: 3, Source: 2, Target: 2},
			},
		},
	}

	for name, g := range graphs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.True(t, codec.Validate(g))

			payload, err := codec.Encode(g)
			require.NoError(t, err)

			got, err := codec.Decode(payload)
			require.NoError(t, err)
			assert.Equal(t, g, got)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	nodes := []domain.Node{{ID: 0}, {ID: 1}}

	tests := []struct {
		name string
		g    domain.DiagramGraph
		want bool
	}{
		{"valid", domain.DiagramGraph{Nodes: nodes, Edges: []domain.Edge{{Source: 0, Target: 1}}}, true},
		{"duplicate id", domain.DiagramGraph{Nodes: []domain.Node{{ID: 0}, {ID: 0}}}, false},
		{"missing source", domain.DiagramGraph{Nodes: nodes, Edges: []domain.Edge{{Source: 5, Target: 1}}}, false},
		{"missing target", domain.DiagramGraph{Nodes: nodes, Edges: []domain.Edge{{Source: 0, Target: 9}}}, false},
		{"empty style", domain.DiagramGraph{Nodes: nodes, Edges: []domain.Edge{{Source: 0, Target: 1, Style: &domain.EdgeStyle{}}}}, false},
		{"nan coordinate", domain.DiagramGraph{Nodes: []domain.Node{{ID: 0, X: math.NaN()}}}, false},
		{"infinite offset", domain.DiagramGraph{Nodes: nodes, Edges: []domain.Edge{{Source: 0, Target: 1, Style: &domain.EdgeStyle{Offset: ptr(math.Inf(1))}}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, codec.Validate(tt.g))
		})
	}
}

// Package svg renders decoded diagrams to SVG without a browser.
package svg

import (
	"bytes"
	"context"
	"html"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/template"

	"go.trai.ch/qsnap/internal/core/domain"
	"go.trai.ch/qsnap/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

const (
	// cell is the distance in pixels between adjacent grid positions.
	cell = 120.0
	// margin surrounds the outermost nodes.
	margin = 60.0
	// nodeGap is how far an edge stops short of the node it touches.
	nodeGap = 18.0
)

var document = template.Must(template.New("svg").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" font-family="serif" font-size="16">
<defs><marker id="head" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10" fill="none" stroke="black"/></marker></defs>
<rect width="100%" height="100%" fill="white"/>
{{- range .Edges}}
<line x1="{{.X1}}" y1="{{.Y1}}" x2="{{.X2}}" y2="{{.Y2}}" stroke="black"{{if .Dashed}} stroke-dasharray="6 4"{{end}}{{if .Head}} marker-end="url(#head)"{{end}}/>
{{- if .Label}}
<text x="{{.LX}}" y="{{.LY}}" text-anchor="middle" dominant-baseline="middle">{{.Label}}</text>
{{- end}}
{{- end}}
{{- range .Nodes}}
<text x="{{.X}}" y="{{.Y}}" text-anchor="middle" dominant-baseline="middle">{{.Label}}</text>
{{- end}}
</svg>
`))

type view struct {
	Width, Height string
	Nodes         []nodeView
	Edges         []edgeView
}

type nodeView struct {
	X, Y, Label string
}

type edgeView struct {
	X1, Y1, X2, Y2 string
	LX, LY         string
	Label          string
	Dashed         bool
	Head           bool
}

// Renderer draws each node's label at its grid position and each edge as a
// straight arrow between its endpoints. It holds no resources.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Open is a no-op.
func (r *Renderer) Open(context.Context) error { return nil }

// Close is a no-op.
func (r *Renderer) Close() error { return nil }

// Extension returns "svg".
func (r *Renderer) Extension() string { return "svg" }

// Render writes the SVG drawing of req.Graph to req.Dest.
func (r *Renderer) Render(ctx context.Context, req domain.RenderRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Draw(req.Graph)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(req.Dest), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact directory"), "path", filepath.Dir(req.Dest))
	}
	if err := os.WriteFile(req.Dest, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write artifact"), "path", req.Dest)
	}
	return nil
}

// Draw returns the SVG document for g. The output depends only on g.
func Draw(g domain.DiagramGraph) ([]byte, error) {
	minX, minY, maxX, maxY := bounds(g.Nodes)

	pos := func(x, y float64) (float64, float64) {
		return margin + (x-minX)*cell, margin + (y-minY)*cell
	}

	v := view{
		Width:  num(2*margin + (maxX-minX)*cell),
		Height: num(2*margin + (maxY-minY)*cell),
	}

	for _, n := range g.Nodes {
		x, y := pos(n.X, n.Y)
		v.Nodes = append(v.Nodes, nodeView{X: num(x), Y: num(y), Label: html.EscapeString(n.Label)})
	}

	for _, e := range g.Edges {
		src, okSrc := g.NodeByID(e.Source)
		dst, okDst := g.NodeByID(e.Target)
		if !okSrc || !okDst {
			return nil, zerr.With(zerr.With(domain.ErrInvalidEdge, "source", e.Source), "target", e.Target)
		}
		x1, y1 := pos(src.X, src.Y)
		x2, y2 := pos(dst.X, dst.Y)
		v.Edges = append(v.Edges, drawEdge(e, x1, y1, x2, y2))
	}

	var buf bytes.Buffer
	if err := document.Execute(&buf, v); err != nil {
		return nil, zerr.Wrap(err, "failed to draw diagram")
	}
	return buf.Bytes(), nil
}

func drawEdge(e domain.Edge, x1, y1, x2, y2 float64) edgeView {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)

	// Perpendicular unit vector, used for offsets and label placement.
	px, py := 0.0, -1.0
	if length > 0 {
		ux, uy := dx/length, dy/length
		px, py = -uy, ux
		if length > 2*nodeGap {
			x1, y1 = x1+ux*nodeGap, y1+uy*nodeGap
			x2, y2 = x2-ux*nodeGap, y2-uy*nodeGap
		}
	}

	if e.Style != nil && e.Style.Offset != nil {
		shift := *e.Style.Offset * 8
		x1, y1 = x1+px*shift, y1+py*shift
		x2, y2 = x2+px*shift, y2+py*shift
	}

	ev := edgeView{
		X1: num(x1), Y1: num(y1), X2: num(x2), Y2: num(y2),
		LX:    num((x1+x2)/2 + px*14),
		LY:    num((y1+y2)/2 + py*14),
		Label: html.EscapeString(e.Label),
		Head:  true,
	}
	if e.Style != nil {
		if e.Style.BodyName != nil && *e.Style.BodyName == "dashed" {
			ev.Dashed = true
		}
		if e.Style.HeadName != nil && *e.Style.HeadName == "none" {
			ev.Head = false
		}
	}
	return ev
}

func bounds(nodes []domain.Node) (minX, minY, maxX, maxY float64) {
	if len(nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = nodes[0].X, nodes[0].Y
	maxX, maxY = minX, minY
	for _, n := range nodes[1:] {
		minX, maxX = min(minX, n.X), max(maxX, n.X)
		minY, maxY = min(minY, n.Y), max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

package layout

import (
	"maps"
	"slices"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
)

// Params are the fixed geometry constants of the tree diagram.
// All values are user units (pixels in SVG).
type Params struct {
	CardWidth    float64 `json:"card_width,omitempty"`
	CardHeight   float64 `json:"card_height,omitempty"`
	CardGap      float64 `json:"card_gap,omitempty"`
	LayerSpacing float64 `json:"layer_spacing,omitempty"`
	PadTop       float64 `json:"pad_top,omitempty"`
	PadBottom    float64 `json:"pad_bottom,omitempty"`
	PadSide      float64 `json:"pad_side,omitempty"`
}

// DefaultParams are the tuned production constants. The card size fits
// a name plus a team label at default font sizes; the rest is spacing
// chosen for legibility at a few hundred coaches.
var DefaultParams = Params{
	CardWidth:    150,
	CardHeight:   46,
	CardGap:      14,
	LayerSpacing: 120,
	PadTop:       70,
	PadBottom:    50,
	PadSide:      100,
}

// WithDefaults fills zero fields from DefaultParams so partially
// configured pipelines degrade to the tuned constants.
func (p Params) WithDefaults() Params {
	d := DefaultParams
	if p.CardWidth > 0 {
		d.CardWidth = p.CardWidth
	}
	if p.CardHeight > 0 {
		d.CardHeight = p.CardHeight
	}
	if p.CardGap > 0 {
		d.CardGap = p.CardGap
	}
	if p.LayerSpacing > 0 {
		d.LayerSpacing = p.LayerSpacing
	}
	if p.PadTop > 0 {
		d.PadTop = p.PadTop
	}
	if p.PadBottom > 0 {
		d.PadBottom = p.PadBottom
	}
	if p.PadSide > 0 {
		d.PadSide = p.PadSide
	}
	return d
}

// Build converts per-generation orderings into a positioned layout:
// deterministic pixel coordinates for every kept coach, curve geometry
// for every render edge, and the overall canvas extent.
//
// Positions are a pure function of layer membership and order. Each
// generation is centered horizontally; within a generation cards sit
// at CardWidth+CardGap intervals so same-layer cards can never
// overlap. Deeper generations render higher on the canvas, roots at
// the bottom.
func Build(p *lineage.Pruned, orders map[int][]string, params Params) graph.Layout {
	params = params.WithDefaults()
	d := p.Dataset()

	depths := slices.Sorted(maps.Keys(orders))
	deepest := 0
	widest := 0.0
	for _, depth := range depths {
		if depth > deepest {
			deepest = depth
		}
		if w := rowWidth(len(orders[depth]), params); w > widest {
			widest = w
		}
	}

	canvasW := widest + 2*params.PadSide
	canvasH := float64(deepest+1)*params.LayerSpacing + params.PadTop + params.PadBottom

	l := graph.Layout{
		VizType:     graph.VizTypeTree,
		Width:       canvasW,
		Height:      canvasH,
		CardWidth:   params.CardWidth,
		CardHeight:  params.CardHeight,
		Layers:      orders,
		Connections: p.ConnectionIndex(),
		TeamColors:  d.TeamColors,
	}

	for _, depth := range depths {
		row := orders[depth]
		y := params.PadTop + float64(deepest-depth)*params.LayerSpacing
		startX := (canvasW - rowWidth(len(row), params)) / 2
		for j, id := range row {
			c, _ := d.CoachByID(id)
			l.Nodes = append(l.Nodes, graph.PositionedNode{
				ID:    c.ID,
				Name:  c.Name,
				Team:  c.CurrentTeam,
				Root:  c.IsCurrentHC,
				Depth: depth,
				Order: j,
				X:     startX + float64(j)*(params.CardWidth+params.CardGap) + params.CardWidth/2,
				Y:     y,
			})
		}
	}

	for _, e := range p.RenderEdges() {
		src, okS := l.NodeByID(e.Source)
		dst, okD := l.NodeByID(e.Target)
		if !okS || !okD {
			continue
		}
		l.Edges = append(l.Edges, graph.RenderEdge{
			Source:  e.Source,
			Target:  e.Target,
			Years:   e.Years,
			Context: e.Context,
			Curve:   CurveBetween(src, dst, params),
		})
	}

	return l
}

// rowWidth is the horizontal span of n cards laid side by side.
func rowWidth(n int, params Params) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*params.CardWidth + float64(n-1)*params.CardGap
}

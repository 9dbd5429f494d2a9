package sink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/render/tree/styles"
)

const cardInteractionCSS = `
    .card { transition: stroke-width 0.15s ease; }
    .card.highlight { stroke: ` + styles.HighlightRing + `; stroke-width: 3; }
    .edge { transition: stroke-opacity 0.15s ease; }
    .edge.dimmed { stroke-opacity: 0.15; }`

const cardInteractionJS = `
    function highlight(ids) {
      document.querySelectorAll('.card').forEach(c => c.classList.toggle('highlight', ids.includes(c.id.replace('card-', ''))));
      document.querySelectorAll('.edge').forEach(e => e.classList.toggle('dimmed', !ids.includes(e.dataset.source) && !ids.includes(e.dataset.target)));
    }
    function clearHighlight() {
      document.querySelectorAll('.card, .edge').forEach(el => el.classList.remove('highlight', 'dimmed'));
    }
    document.querySelectorAll('.card').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.id.replace('card-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	highlight   map[string]bool
	showOverlap bool
	static      bool
}

// WithHighlight emphasizes the given coach ids (typically a deepest
// ancestor chain or a full reachable set) with a highlight ring and
// dims every edge that touches no highlighted coach.
func WithHighlight(ids []string) SVGOption {
	return func(r *svgRenderer) {
		r.highlight = make(map[string]bool, len(ids))
		for _, id := range ids {
			r.highlight[id] = true
		}
	}
}

// WithOverlap overlays informational career-overlap connections as
// dashed lateral arcs. They are display-only and never influence the
// layout itself.
func WithOverlap() SVGOption { return func(r *svgRenderer) { r.showOverlap = true } }

// WithStatic omits the hover interaction script, producing an SVG safe
// for contexts that strip scripts (embedding, PNG conversion).
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// RenderSVG renders a tree layout as a standalone SVG document: one
// rounded card per coach (team color fill, name and team label), one
// cubic path per mentorship edge, optional overlap overlay and
// highlight emphasis.
//
// Output is deterministic: nodes and edges are emitted in layout
// order, which is itself deterministic.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardInteractionCSS)

	// Edges first so cards draw on top of their endpoints.
	for _, e := range l.Edges {
		renderEdge(&buf, e, r.highlight)
	}
	if r.showOverlap {
		renderOverlaps(&buf, l)
	}
	for _, n := range l.Nodes {
		renderCard(&buf, l, n, r.highlight[n.ID])
	}

	if !r.static {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", cardInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEdge(buf *bytes.Buffer, e graph.RenderEdge, highlight map[string]bool) {
	class := "edge"
	stroke := styles.EdgeStroke
	width := 1.5
	if highlight != nil {
		if highlight[e.Source] && highlight[e.Target] {
			stroke = styles.HighlightRing
			width = 2.5
		} else {
			class = "edge dimmed"
		}
	}
	fmt.Fprintf(buf, `  <path class=%q data-source=%q data-target=%q d=%q fill="none" stroke=%q stroke-width="%.1f"/>`+"\n",
		class, e.Source, e.Target, e.Curve.Path(), stroke, width)
}

// renderOverlaps draws career-overlap connections between positioned
// coaches as dashed arcs. Overlaps whose endpoints were not both
// positioned are skipped silently.
func renderOverlaps(buf *bytes.Buffer, l graph.Layout) {
	seen := make(map[[2]string]bool)
	for _, id := range slices.Sorted(maps.Keys(l.Connections)) {
		for _, info := range l.Connections[id] {
			if info.Type != graph.ConnectionOverlap {
				continue
			}
			key := [2]string{id, info.Other}
			if id > info.Other {
				key = [2]string{info.Other, id}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			a, okA := l.NodeByID(key[0])
			b, okB := l.NodeByID(key[1])
			if !okA || !okB {
				continue
			}
			fmt.Fprintf(buf, `  <path class="edge overlap" d=%q fill="none" stroke=%q stroke-width="1" stroke-dasharray="5 4"/>`+"\n",
				overlapCurve(a, b).Path(), styles.OverlapStroke)
		}
	}
}

// overlapCurve arcs between two card centers; unlike render edges the
// endpoints may sit in any generations, so the arc simply bows upward
// from center to center.
func overlapCurve(a, b graph.PositionedNode) graph.Curve {
	lift := 40.0
	return graph.Curve{
		X1: a.X, Y1: a.Y,
		CX1: a.X, CY1: a.Y - lift,
		CX2: b.X, CY2: b.Y - lift,
		X2: b.X, Y2: b.Y,
	}
}

func renderCard(buf *bytes.Buffer, l graph.Layout, n graph.PositionedNode, highlighted bool) {
	card := styles.Resolve(teamColor(l, n.Team), n.Root)

	// Geometry of the node card: X/Y address the center.
	w, h := cardSize(l)
	x, y := n.X-w/2, n.Y-h/2

	class := "card"
	if highlighted {
		class = "card highlight"
	}
	fmt.Fprintf(buf, `  <rect id="card-%s" class=%q x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill=%q stroke=%q stroke-width="1.5"/>`+"\n",
		n.ID, class, x, y, w, h, card.Fill, card.Stroke)

	nameY := n.Y - 2.0
	if n.Team == "" {
		nameY = n.Y + 4.0
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="system-ui, sans-serif" font-size="13" font-weight="600" fill=%q>%s</text>`+"\n",
		n.X, nameY, card.Text, escapeText(n.Name))
	if n.Team != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="system-ui, sans-serif" font-size="10" fill=%q opacity="0.8">%s</text>`+"\n",
			n.X, n.Y+13.0, card.Text, escapeText(n.Team))
	}
}

func teamColor(l graph.Layout, team string) string {
	if team == "" || l.TeamColors == nil {
		return ""
	}
	return l.TeamColors[team]
}

// cardSize reads card dimensions from the layout, falling back to the
// production constants for layouts serialized before the fields existed.
func cardSize(l graph.Layout) (w, h float64) {
	w, h = 150, 46
	if l.CardWidth > 0 {
		w = l.CardWidth
	}
	if l.CardHeight > 0 {
		h = l.CardHeight
	}
	return w, h
}

func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

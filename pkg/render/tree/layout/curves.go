package layout

import "github.com/coachtree/coachtree/pkg/graph"

// Lateral arc shaping for same-generation edges. The arc rises above
// both cards so it can't be mistaken for a vertical lineage link;
// height scales with horizontal distance down to a fixed floor.
const (
	lateralArcMin   = 30.0
	lateralArcScale = 0.15
)

// CurveBetween computes the cubic curve connecting two positioned
// cards.
//
// Same-generation edges arc upward above both cards. Cross-generation
// edges run from the bottom edge of the visually higher card (smaller
// y) to the top edge of the lower one, with both control points at the
// vertical midpoint - the caller never has to know which endpoint is
// the mentor.
func CurveBetween(a, b graph.PositionedNode, params Params) graph.Curve {
	params = params.WithDefaults()
	half := params.CardHeight / 2

	if a.Depth == b.Depth {
		dx := b.X - a.X
		if dx < 0 {
			dx = -dx
		}
		arc := dx * lateralArcScale
		if arc < lateralArcMin {
			arc = lateralArcMin
		}
		top := a.Y - half
		return graph.Curve{
			X1: a.X, Y1: top,
			CX1: a.X, CY1: top - arc,
			CX2: b.X, CY2: top - arc,
			X2: b.X, Y2: b.Y - half,
		}
	}

	upper, lower := a, b
	if b.Y < a.Y {
		upper, lower = b, a
	}
	y1 := upper.Y + half
	y2 := lower.Y - half
	mid := (y1 + y2) / 2
	return graph.Curve{
		X1: upper.X, Y1: y1,
		CX1: upper.X, CY1: mid,
		CX2: lower.X, CY2: mid,
		X2: lower.X, Y2: y2,
	}
}

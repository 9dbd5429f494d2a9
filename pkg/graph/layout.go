package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Tree ("tree"):
//	  - Nodes: positioned coach cards with coordinates
//	  - Edges: mentorship edges with curve geometry
//	  - Layers: depth → ordered coach ids
//	  - Connections: per-coach informational lookup (display only)
//
//	Nodelink ("nodelink"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "dot")
//
// Shared fields (both types):
//   - Width, Height: canvas dimensions
//   - TeamColors: organization → display color lookup
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Canvas dimensions
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Card dimensions (tree layouts). Zero means the renderer defaults.
	CardWidth  float64 `json:"card_width,omitempty" bson:"card_width,omitempty"`
	CardHeight float64 `json:"card_height,omitempty" bson:"card_height,omitempty"`

	// Tree-specific
	Nodes       []PositionedNode            `json:"nodes,omitempty" bson:"nodes,omitempty"`
	Edges       []RenderEdge                `json:"edges,omitempty" bson:"edges,omitempty"`
	Layers      map[int][]string            `json:"layers,omitempty" bson:"layers,omitempty"`
	Connections map[string][]ConnectionInfo `json:"connections,omitempty" bson:"connections,omitempty"`

	// Shared display data
	TeamColors map[string]string `json:"team_colors,omitempty" bson:"team_colors,omitempty"`

	// Nodelink-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsTree returns true if this is a layered tree layout.
func (l *Layout) IsTree() bool { return l.VizType == VizTypeTree }

// IsNodelink returns true if this is a nodelink layout.
func (l *Layout) IsNodelink() bool { return l.VizType == VizTypeNodelink }

// NodeByID looks up a positioned node by coach id.
func (l *Layout) NodeByID(id string) (PositionedNode, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// =============================================================================
// PositionedNode - Tree Visualization Element
// =============================================================================

// PositionedNode is a coach card with its final generation, order, and
// pixel coordinates. X and Y address the card center.
type PositionedNode struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Team  string  `json:"team,omitempty" bson:"team,omitempty"`
	Root  bool    `json:"root,omitempty" bson:"root,omitempty"`
	Depth int     `json:"depth" bson:"depth"`
	Order int     `json:"order" bson:"order"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
}

// RenderEdge is a mentorship edge between two positioned nodes with its
// draw geometry. Direction is mentor → protégé.
type RenderEdge struct {
	Source  string `json:"source" bson:"source"`
	Target  string `json:"target" bson:"target"`
	Years   string `json:"years,omitempty" bson:"years,omitempty"`
	Context string `json:"context,omitempty" bson:"context,omitempty"`
	Curve   Curve  `json:"curve" bson:"curve"`
}

// Curve is a cubic Bézier descriptor in canvas coordinates.
type Curve struct {
	X1  float64 `json:"x1" bson:"x1"`
	Y1  float64 `json:"y1" bson:"y1"`
	CX1 float64 `json:"cx1" bson:"cx1"`
	CY1 float64 `json:"cy1" bson:"cy1"`
	CX2 float64 `json:"cx2" bson:"cx2"`
	CY2 float64 `json:"cy2" bson:"cy2"`
	X2  float64 `json:"x2" bson:"x2"`
	Y2  float64 `json:"y2" bson:"y2"`
}

// Path returns the SVG path data for the curve.
func (c Curve) Path() string {
	return fmt.Sprintf("M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f",
		c.X1, c.Y1, c.CX1, c.CY1, c.CX2, c.CY2, c.X2, c.Y2)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeTree
	}

	if l.IsTree() && len(l.Nodes) == 0 {
		return Layout{}, fmt.Errorf("tree layout must contain nodes")
	}
	if l.IsNodelink() && l.DOT == "" {
		return Layout{}, fmt.Errorf("nodelink layout must contain DOT string")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

package sink

import (
	"fmt"

	"github.com/coachtree/coachtree/pkg/graph"
)

// RenderJSON exports a tree layout as the canonical pretty-printed
// JSON artifact. This is the interchange format between the pipeline
// and external renderers, and the form cached between runs: importing
// it with [graph.UnmarshalLayout] and rendering again produces
// identical output.
func RenderJSON(l graph.Layout) ([]byte, error) {
	if !l.IsTree() {
		return nil, fmt.Errorf("tree JSON sink got %q layout", l.VizType)
	}
	return graph.MarshalLayout(l)
}

package pipeline

import (
	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/render/nodelink"
	"github.com/coachtree/coachtree/pkg/render/tree/layout"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout generates a complete layout for any visualization type.
// This is the unified entry point for generating serializable layout data.
//
// Tree layouts carry positioned cards, edge curves, per-generation
// orderings, and the informational connection index. Nodelink layouts
// carry a Graphviz DOT string derived from the same generation
// assignment.
func GenerateLayout(p *lineage.Pruned, opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	if opts.IsNodelink() {
		return generateNodelinkLayout(p, opts)
	}
	return generateTreeLayout(p, opts), nil
}

// generateTreeLayout orders each generation and computes coordinates.
func generateTreeLayout(p *lineage.Pruned, opts Options) graph.Layout {
	orders := opts.orderer().OrderLayers(p)
	return layout.Build(p, orders, opts.Layout)
}

// generateNodelinkLayout builds the tree layout first, then derives the
// DOT representation from it. Rank groups in the DOT output follow the
// same generation assignment as the tree diagram.
func generateNodelinkLayout(p *lineage.Pruned, opts Options) (graph.Layout, error) {
	l := generateTreeLayout(p, opts)

	dot := nodelink.ToDOT(l, nodelink.Options{})
	l.VizType = graph.VizTypeNodelink
	l.DOT = dot
	l.Engine = "dot"
	return l, nil
}

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/render"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed includes generation depth and team in node labels.
	// When false, only the coach name is shown.
	Detailed bool
}

// ToDOT converts a tree layout to Graphviz DOT format for node-link
// visualization. Edges point mentor → protégé, and coaches in the same
// generation are pinned to the same rank so the Graphviz view agrees
// with the layered diagram. Root coaches render with a filled accent.
//
// The resulting DOT string can be rendered with [RenderSVG] or
// [RenderPNG].
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph lineage {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	groups := rankGroups(l)
	for _, depth := range slices.Sorted(maps.Keys(groups)) {
		fmt.Fprintf(&buf, "  { rank=same; /* generation %d */ ", depth)
		for _, id := range groups[depth] {
			fmt.Fprintf(&buf, "%q; ", id)
		}
		buf.WriteString("}\n")
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// rankGroups returns coach ids grouped by generation, preferring the
// layout's layer orderings and falling back to node depths.
func rankGroups(l graph.Layout) map[int][]string {
	if l.Layers != nil {
		return l.Layers
	}
	groups := make(map[int][]string)
	for _, n := range l.Nodes {
		groups[n.Depth] = append(groups[n.Depth], n.ID)
	}
	return groups
}

func fmtLabel(n graph.PositionedNode, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{fmt.Sprintf("generation: %d", n.Depth)}
	if n.Team != "" {
		parts = append(parts, "team: "+n.Team)
	}
	return n.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graph.PositionedNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Root {
		attrs = append(attrs, "fillcolor=\"#2c3e50\"", "fontcolor=white")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

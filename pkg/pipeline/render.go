package pipeline

import (
	"fmt"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/render"
	"github.com/coachtree/coachtree/pkg/render/nodelink"
	"github.com/coachtree/coachtree/pkg/render/tree/sink"
)

// RenderFromLayout renders output artifacts in the requested formats.
// This is the unified entry point: the layout's viz type selects the
// renderer, so cached and freshly computed layouts take the same path.
func RenderFromLayout(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if l.IsNodelink() {
		return renderNodelink(l, opts)
	}
	return renderTree(l, opts)
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(parsed, opts)
}

// renderTree generates layered-diagram outputs.
func renderTree(l graph.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = render.ToPNG(sink.RenderSVG(l, svgOpts...), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(sink.RenderSVG(l, svgOpts...))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nodelink.Options{}))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, fmt.Errorf("unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink generates nodelink outputs from a layout's DOT string.
func renderNodelink(l graph.Layout, opts Options) (map[string][]byte, error) {
	if l.DOT == "" {
		return nil, fmt.Errorf("nodelink layout missing DOT string")
	}

	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(l.DOT)
		case FormatPNG:
			data, err = nodelink.RenderPNG(l.DOT, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(l.DOT)
		case FormatDOT:
			data = []byte(l.DOT)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions maps pipeline options onto SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	if len(opts.Highlight) > 0 {
		svgOpts = append(svgOpts, sink.WithHighlight(opts.Highlight))
	}
	if opts.ShowOverlap {
		svgOpts = append(svgOpts, sink.WithOverlap())
	}
	if opts.Static {
		svgOpts = append(svgOpts, sink.WithStatic())
	}

	return svgOpts
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		highlight  string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [dataset.json|layout.json]",
		Short: "Render a lineage diagram to SVG, PNG, PDF, DOT, or JSON",
		Long: `Render a lineage diagram.

The input may be a dataset (the full pipeline runs: ingest, layout, render)
or a layout.json produced by 'coachtree layout' (only the render stage runs).
The two are told apart by the file's viz_type field.

Multiple formats write <base>.<format> files; a single format honors
--output directly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := c.datasetArg(args)
			if input == "" {
				return fmt.Errorf("input required: pass a path or set dataset in the config file")
			}
			opts.Formats = parseFormats(formatsStr)
			opts.Highlight = parseHighlight(highlight)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), input, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	cmd.Flags().StringVarP(&opts.VizType, "type", "t", graph.VizTypeTree, "visualization type: tree (default), nodelink")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", pipeline.DefaultMaxDepth, "generation depth cap")
	cmd.Flags().StringVar(&highlight, "highlight", "", "coach ids to emphasize (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowOverlap, "overlap", false, "draw career-overlap connections")
	cmd.Flags().BoolVar(&opts.Static, "static", false, "omit hover CSS/JS from SVG output")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG raster scale factor")

	return cmd
}

// runRender renders artifacts from either a dataset or a precomputed layout.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	var (
		artifacts map[string][]byte
		kept      int
		edges     int
		cacheHit  bool
	)

	if l, ok := readLayoutInput(input); ok {
		// Layout input: the viz type comes from the file, not the flag.
		opts.VizType = l.VizType
		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		artifacts, cacheHit, err = runner.RenderWithCacheInfo(ctx, l, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render layout %s: %w", input, err)
		}
		spinner.Stop()
		kept = len(l.Nodes)
		edges = len(l.Edges)
	} else {
		opts.DatasetPath = input
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s view...", opts.VizType))
		spinner.Start()
		result, execErr := runner.Execute(ctx, opts)
		if execErr != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render dataset %s: %w", input, execErr)
		}
		spinner.Stop()
		artifacts = result.Artifacts
		kept = result.Stats.KeptCount
		edges = result.Stats.EdgeCount
		cacheHit = result.CacheInfo.RenderHit
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(input, output, opts.Formats, artifacts)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(kept, edges, cacheHit)

	return nil
}

// readLayoutInput reports whether the input file is a precomputed layout.
// Datasets have no viz_type field, so its presence is the discriminator.
func readLayoutInput(path string) (graph.Layout, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Layout{}, false
	}
	var probe struct {
		VizType string `json:"viz_type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.VizType == "" {
		return graph.Layout{}, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		return graph.Layout{}, false
	}
	return l, true
}

// writeArtifacts writes each rendered artifact to disk and returns the paths.
// A single format honors the explicit output path; multiple formats always
// use <base>.<format>.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".layout")
	if output != "" {
		if len(formats) == 1 {
			data := artifacts[formats[0]]
			if err := os.WriteFile(output, data, 0644); err != nil {
				return nil, fmt.Errorf("write output %s: %w", output, err)
			}
			return []string{output}, nil
		}
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	var written []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

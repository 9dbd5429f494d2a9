package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing lineage layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Compute the layered lineage layout from a dataset",
		Long: `Compute the layered lineage layout from a coaching dataset.

The layout command ingests a dataset (pruning it to the lineages behind
current head coaches), runs crossing minimization, and writes a layout.json
with pixel positions and edge curves. Render it with 'coachtree render'.

The dataset argument defaults to the config file's dataset path.
Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.DatasetPath = c.datasetArg(args)
			if opts.DatasetPath == "" {
				return fmt.Errorf("dataset required: pass a path or set dataset in the config file")
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Layout flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", graph.VizTypeTree, "visualization type: tree (default), nodelink")
	cmd.Flags().IntVar(&opts.MaxDepth, "depth", pipeline.DefaultMaxDepth, "generation depth cap")
	cmd.Flags().IntVar(&opts.Passes, "passes", pipeline.DefaultPasses, "barycenter sweep count")
	cmd.Flags().BoolVar(&opts.Converge, "converge", false, "count crossings each pass and keep the best ordering")

	return cmd
}

// runLayout ingests the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	tree, err := runner.Ingest(ctx, opts)
	if err != nil {
		return fmt.Errorf("ingest dataset %s: %w", opts.DatasetPath, err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.VizType))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.DatasetPath, filepath.Ext(opts.DatasetPath))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done(fmt.Sprintf("Laid out %d coaches", tree.KeptCount()))

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(tree.KeptCount(), len(layout.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "coachtree render "+outputPath)

	return nil
}

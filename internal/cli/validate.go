package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/pipeline"
)

// validateCommand creates the validate command for dataset linting.
func (c *CLI) validateCommand() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "validate [dataset.json]",
		Short: "Validate a dataset and report lineage statistics",
		Long: `Validate a coaching dataset.

Checks structural validity (ids, names, connection types, team colors),
then runs the full prune to surface mentorship cycles and report how much
of the dataset survives: kept coaches, dropped coaches, generations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.datasetArg(args)
			if path == "" {
				return fmt.Errorf("dataset required: pass a path or set dataset in the config file")
			}
			return c.runValidate(path, depth)
		},
	}

	cmd.Flags().IntVar(&depth, "depth", pipeline.DefaultMaxDepth, "generation depth cap")

	return cmd
}

func (c *CLI) runValidate(path string, depth int) error {
	d, err := graph.ReadDatasetFile(path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", path, err)
	}

	if err := d.Validate(); err != nil {
		printError("Dataset is invalid")
		printDetail("%v", err)
		return fmt.Errorf("validation failed")
	}

	p, err := pipeline.BuildPruned(&d, depth)
	if err != nil {
		if errors.Is(err, lineage.ErrCycle) {
			printError("Dataset contains a mentorship cycle")
			printDetail("%v", err)
			return fmt.Errorf("validation failed")
		}
		return err
	}

	kept := len(p.Coaches())
	roots := d.Roots()

	printSuccess("Dataset is valid")
	printDetail("%d coaches, %d connections", len(d.Coaches), len(d.Connections))
	printDetail("%d current head coaches (roots)", len(roots))
	printDetail("%d kept after pruning, %d dropped", kept, len(d.Coaches)-kept)
	printDetail("%d generations (deepest %d)", p.Deepest()+1, p.Deepest())
	printDetail("%d mentorship edges rendered, %d informational", len(p.RenderEdges()), len(p.InfoEdges()))

	if len(roots) == 0 {
		printWarning("No current head coaches: everything prunes away")
	}

	return nil
}

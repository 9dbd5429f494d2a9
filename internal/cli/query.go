package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/pipeline"
)

// queryCommand creates the query command group for lineage lookups.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		datasetPath string
		depth       int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Answer lineage questions about a coach",
		Long: `Answer lineage questions about a coach from the pruned mentorship graph.

All queries run against the kept set: the coaches reachable upward from
current head coaches within the depth cap. Coaches pruned away are
reported as not found.`,
	}

	cmd.PersistentFlags().StringVarP(&datasetPath, "dataset", "d", "", "dataset file (default: config dataset)")
	cmd.PersistentFlags().IntVar(&depth, "depth", pipeline.DefaultMaxDepth, "generation depth cap")

	cmd.AddCommand(c.queryChainCommand(&datasetPath, &depth))
	cmd.AddCommand(c.queryReachCommand(&datasetPath, &depth))
	cmd.AddCommand(c.queryConnectionsCommand(&datasetPath, &depth))

	return cmd
}

func (c *CLI) queryChainCommand(datasetPath *string, depth *int) *cobra.Command {
	return &cobra.Command{
		Use:   "chain <coach-id>",
		Short: "Show the deepest mentor chain above a coach",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPruned(*datasetPath, *depth)
			if err != nil {
				return err
			}
			id := args[0]
			chain := p.DeepestAncestorChain(id)
			if chain == nil {
				return fmt.Errorf("coach %q is not in the kept lineage set", id)
			}

			printSuccess("Mentor chain for %s", coachLabel(p, id))
			parts := make([]string, len(chain))
			for i, cid := range chain {
				parts[i] = coachLabel(p, cid)
			}
			fmt.Println("  " + strings.Join(parts, " "+StyleDim.Render(iconArrow)+" "))

			edges := p.PathEdges(chain)
			if len(edges) > 0 {
				printNewline()
				for _, e := range edges {
					detail := e.Years
					if detail == "" {
						detail = e.Context
					}
					printDetail("%s mentored %s  %s", e.Source, e.Target, detail)
				}
			}
			return nil
		},
	}
}

func (c *CLI) queryReachCommand(datasetPath *string, depth *int) *cobra.Command {
	return &cobra.Command{
		Use:   "reach <coach-id>",
		Short: "Show every coach connected through mentor or protégé chains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPruned(*datasetPath, *depth)
			if err != nil {
				return err
			}
			id := args[0]
			reach := p.FullReachableSet(id)
			if reach == nil {
				return fmt.Errorf("coach %q is not in the kept lineage set", id)
			}

			printSuccess("%s reaches %d coaches", coachLabel(p, id), len(reach)-1)
			for _, cid := range reach[1:] {
				d, _ := p.Depth(cid)
				printDetail("%s  (generation %d)", coachLabel(p, cid), d)
			}
			return nil
		},
	}
}

func (c *CLI) queryConnectionsCommand(datasetPath *string, depth *int) *cobra.Command {
	return &cobra.Command{
		Use:   "connections <coach-id>",
		Short: "List a coach's mentorship and overlap connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.loadPruned(*datasetPath, *depth)
			if err != nil {
				return err
			}
			id := args[0]
			if !p.Contains(id) {
				return fmt.Errorf("coach %q is not in the kept lineage set", id)
			}

			conns := p.ConnectionsFor(id)
			printSuccess("%s has %d connections", coachLabel(p, id), len(conns))
			for _, conn := range conns {
				line := fmt.Sprintf("%s %s", conn.Direction, coachLabel(p, conn.Other))
				if conn.Type == graph.ConnectionOverlap {
					line = fmt.Sprintf("overlapped with %s", coachLabel(p, conn.Other))
				}
				if conn.Years != "" {
					line += "  " + StyleDim.Render(conn.Years)
				}
				printDetail("%s", line)
			}
			return nil
		},
	}
}

// loadPruned reads a dataset and builds the pruned lineage index queries
// run against.
func (c *CLI) loadPruned(datasetPath string, depth int) (*lineage.Pruned, error) {
	if datasetPath == "" {
		datasetPath = c.Config.DatasetPath
	}
	if datasetPath == "" {
		return nil, fmt.Errorf("dataset required: pass --dataset or set dataset in the config file")
	}
	d, err := graph.ReadDatasetFile(datasetPath)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", datasetPath, err)
	}
	return pipeline.BuildPruned(&d, depth)
}

// coachLabel formats a coach for terminal output: styled name when the
// dataset knows it, bare id otherwise.
func coachLabel(p *lineage.Pruned, id string) string {
	if coach, ok := p.Dataset().CoachByID(id); ok {
		return StyleHighlight.Render(coach.Name)
	}
	return StyleValue.Render(id)
}

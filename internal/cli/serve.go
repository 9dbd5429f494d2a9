package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		datasetPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline and lineage queries over HTTP",
		Long: `Serve the HTTP API.

Endpoints: POST /api/layout runs the pipeline, /api/coaches/{id}/... answer
lineage queries, /api/snapshots manages the snapshot store, /metrics exposes
prometheus metrics. The server drains in-flight requests on shutdown.

The default dataset (for the coach query endpoints) comes from --dataset or
the config file; queries can also name a stored snapshot per request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if addr == "" {
				addr = c.Config.ListenAddr
			}
			if datasetPath == "" {
				datasetPath = c.Config.DatasetPath
			}

			srv, err := server.New(server.Config{
				Addr:        addr,
				DatasetPath: datasetPath,
			}, runner, st, c.Logger)
			if err != nil {
				return err
			}

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config listen_addr or :8080)")
	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "default dataset for coach queries")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable pipeline caching")

	return cmd
}

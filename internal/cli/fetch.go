package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/httputil"
)

// fetchTTL bounds how long a downloaded dataset is reused before the
// source is contacted again.
const fetchTTL = 24 * time.Hour

// fetchCommand creates the fetch command for downloading datasets.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a dataset over HTTPS",
		Long: `Download a coaching dataset.

The payload is validated before it is written, so a scraper outage or a
truncated response never clobbers a good local dataset. Server errors are
retried with backoff, and responses are reused for a day unless --refresh
forces a new download.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, args[0], output, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "coaching_tree.json", "output file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	return cmd
}

func (c *CLI) runFetch(cmd *cobra.Command, url, output string, refresh bool) error {
	ctx := cmd.Context()

	spinner := newSpinnerWithContext(ctx, "Fetching dataset...")
	spinner.Start()

	data, err := c.fetchBytes(cmd, url, refresh)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	spinner.Stop()

	d, err := graph.UnmarshalDataset(data)
	if err != nil {
		return fmt.Errorf("response is not a dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("fetched dataset is invalid: %w", err)
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Dataset saved")
	printFile(output)
	printDetail("%d coaches, %d connections", len(d.Coaches), len(d.Connections))
	printNextStep("Next", "coachtree validate "+output)

	return nil
}

// fetchBytes downloads through the response cache when one is available.
// A missing cache dir or --refresh falls back to a direct fetch.
func (c *CLI) fetchBytes(cmd *cobra.Command, url string, refresh bool) ([]byte, error) {
	ctx := cmd.Context()
	if refresh || c.Config.NoCache {
		return httputil.FetchDataset(ctx, url)
	}
	dir, err := c.cacheDir()
	if err != nil {
		return httputil.FetchDataset(ctx, url)
	}
	respCache, err := httputil.NewCache(dir, fetchTTL)
	if err != nil {
		return httputil.FetchDataset(ctx, url)
	}
	return httputil.FetchDatasetCached(ctx, url, respCache)
}

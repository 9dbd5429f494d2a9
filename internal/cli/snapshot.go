package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/store"
)

// snapshotCommand creates the snapshot command group for the named
// snapshot store.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage named dataset and layout snapshots",
		Long: `Manage named snapshots.

Snapshots are validated datasets or layouts stored under a name, so the
serve command and the query endpoints can reference them without file
paths. The backend is the file store by default, or MongoDB when
mongo_uri is configured.`,
	}

	cmd.AddCommand(c.snapshotSaveCommand())
	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())
	cmd.AddCommand(c.snapshotDeleteCommand())

	return cmd
}

func (c *CLI) snapshotSaveCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "save <name> <file>",
		Short: "Store a dataset or layout under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, path := args[0], args[1]

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			k := store.Kind(kind)
			switch k {
			case store.KindDataset:
				d, err := graph.UnmarshalDataset(data)
				if err != nil {
					return fmt.Errorf("%s is not a dataset: %w", path, err)
				}
				if err := d.Validate(); err != nil {
					return fmt.Errorf("dataset %s is invalid: %w", path, err)
				}
			case store.KindLayout:
				if _, err := graph.UnmarshalLayout(data); err != nil {
					return fmt.Errorf("%s is not a layout: %w", path, err)
				}
			default:
				return fmt.Errorf("invalid kind %q (must be dataset or layout)", kind)
			}

			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			rec := store.NewRecord(name, k, data)
			if err := st.Put(cmd.Context(), rec); err != nil {
				return fmt.Errorf("store snapshot %s: %w", name, err)
			}

			printSuccess("Snapshot saved")
			printKeyValue("name", name)
			printKeyValue("kind", string(k))
			printKeyValue("hash", rec.Hash[:12])
			printKeyValue("size", fmt.Sprintf("%d bytes", len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", string(store.KindDataset), "snapshot kind: dataset (default), layout")

	return cmd
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			metas, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			if len(metas) == 0 {
				printInfo("No snapshots stored")
				return nil
			}

			for _, m := range metas {
				printKeyValue(m.Name, fmt.Sprintf("%-8s %6d bytes  %s", m.Kind, m.Size, m.UpdatedAt.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			rec, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", args[0], err)
			}

			if raw {
				// Raw payload to stdout so it can be piped or redirected.
				_, err := os.Stdout.Write(rec.Data)
				return err
			}

			printKeyValue("name", rec.Name)
			printKeyValue("kind", string(rec.Kind))
			printKeyValue("hash", rec.Hash)
			printKeyValue("size", fmt.Sprintf("%d bytes", len(rec.Data)))
			printKeyValue("created", rec.CreatedAt.Format("2006-01-02 15:04:05"))
			printKeyValue("updated", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored payload instead of metadata")

	return cmd
}

func (c *CLI) snapshotDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete snapshot %s: %w", args[0], err)
			}
			printSuccess("Snapshot %s deleted", args[0])
			return nil
		},
	}
}

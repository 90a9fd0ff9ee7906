package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
	"github.com/randalmurphal/attrflow/pkg/attrflow/snapshot"
)

var ErrNoDB = errors.New("--db is required")

type SnapshotArgs struct {
	*RootArgs

	DB    string
	Label string
}

func NewSnapshotArgs(rootArgs *RootArgs) *SnapshotArgs {
	return &SnapshotArgs{RootArgs: rootArgs}
}

func (sa *SnapshotArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&sa.DB, "db", "", "Path to the SQLite snapshot database")

	err := cmd.MarkPersistentFlagFilename("db", "db", "sqlite")
	if err != nil {
		panic(fmt.Errorf("mark db flag: %w", err))
	}
}

func NewSnapshotCmd(sa *SnapshotArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage dataset snapshots",
	}
	sa.AddFlags(cmd)

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a dataset file as a new snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: sa.withStore(func(cmd *cobra.Command, store snapshot.Store, args []string) error {
			h, err := memhost.LoadFile(args[0])
			if err != nil {
				return err
			}
			id, err := snapshot.SaveHost(store, h, sa.Label)
			if err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		}),
	}
	importCmd.Flags().StringVar(&sa.Label, "label", "", "Snapshot label")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: sa.withStore(func(cmd *cobra.Command, store snapshot.Store, _ []string) error {
			infos, err := store.List()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLABEL\tSAVED\tSIZE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
					info.ID, info.Label, info.Timestamp.Format(time.RFC3339), info.Size)
			}
			return tw.Flush()
		}),
	}

	exportCmd := &cobra.Command{
		Use:   "export ID",
		Short: "Print a snapshot as a JSON dataset",
		Args:  cobra.ExactArgs(1),
		RunE: sa.withStore(func(cmd *cobra.Command, store snapshot.Store, args []string) error {
			data, err := store.Load(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot %s: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: sa.withStore(func(_ *cobra.Command, store snapshot.Store, args []string) error {
			return store.Delete(args[0])
		}),
	}

	cmd.AddCommand(importCmd, listCmd, exportCmd, deleteCmd)
	return cmd
}

func (sa *SnapshotArgs) withStore(
	fn func(cmd *cobra.Command, store snapshot.Store, args []string) error,
) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if sa.DB == "" {
			return ErrNoDB
		}
		store, err := snapshot.NewSQLiteStore(sa.DB)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("close snapshot store", slog.Any("error", err))
			}
		}()
		return fn(cmd, store, args)
	}
}

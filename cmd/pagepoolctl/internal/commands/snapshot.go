package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbkit/pagepool/pkg/snapshot"
)

func newSnapshotCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or import a compressed point-in-time copy of a page file",
	}

	root.AddCommand(&cobra.Command{
		Use:   "export <file> <out>",
		Short: "Compress a page file into a zstd archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := snapshot.Export(args[0], args[1]); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s -> %s\n", args[0], args[1])
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "import <in> <file>",
		Short: "Restore a page file from a zstd archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := snapshot.Import(args[0], args[1]); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s -> %s\n", args[0], args[1])
			return nil
		},
	})

	return root
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbkit/pagepool/pkg/storage"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <file>",
		Short: "Create a new page file containing a single zero-filled page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.CreatePageFile(args[0]); err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", args[0])
			return nil
		},
	}
}

func newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <file>",
		Short: "Delete a page file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.DestroyPageFile(args[0]); err != nil {
				return fmt.Errorf("destroy %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "destroyed %s\n", args[0])
			return nil
		},
	}
}

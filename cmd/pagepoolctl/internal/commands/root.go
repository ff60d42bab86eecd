// Package commands builds pagepoolctl's cobra command tree.
package commands

import (
	"github.com/spf13/cobra"
)

// Root returns the top-level pagepoolctl command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagepoolctl",
		Short: "Operate paged storage files and their buffer pools",
	}

	root.AddCommand(newCreateCmd())
	root.AddCommand(newDestroyCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newSnapshotCmd())

	return root
}

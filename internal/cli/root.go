// Package cli defines the cobra command tree for gatehouse.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gatehouse",
		Short:         "Visitor access and compliance tracker",
		Long:          "Tracks visitor check-ins and check-outs, violation and ban annotations, and the derived dashboard views for a detention visiting office.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newVisitorsCmd(),
		newVersionCmd(),
	)

	return root
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gatehouse/internal/platform/health"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(health.Version)
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X wildguard/internal/cli.Version=..."
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wildguard %s (git %s)\n", Version, GitCommit)
			return nil
		},
	}
}

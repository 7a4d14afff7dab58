package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/projvar/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show projvar version information.

Displays:
  - projvar version, commit, and build date
  - Go and CUE SDK versions`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}

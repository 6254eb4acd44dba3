package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigmundklaa/sqfpack/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show sqfpack version information.

Displays the CLI version, commit, build date, Go version and the embedded
CUE SDK version.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.GetInfo().String())
			return nil
		},
	}
}

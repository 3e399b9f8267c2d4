// Package cmd implements nilvac's cobra command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info, populated by main from ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Root constructs the top-level nilvac command with every subcommand
// attached.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "nilvac",
		Short: "Nilva compiler driver",
		Long:  "nilvac drives the Nilva compiler's import resolution, binding, type resolution, and AIR building stages.",
	}

	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newImportsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprintf(c.OutOrStdout(), "nilvac %s (%s, built %s)\n", Version, Commit, BuildTime)
			return nil
		},
	}
}

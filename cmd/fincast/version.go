package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fincast/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		if w := info.Check(); w != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), w)
		}
	},
}

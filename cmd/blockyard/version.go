package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockyard"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of blockyard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blockyard version %s\n", strings.TrimSpace(blockyard.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Print the demo workspace outline",
	Long: `Prints every palette and script line with its layout position. Positions
are what replay scripts hit when they give raw x/y coordinates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := newWorkspace(cmd, false)
		if err != nil {
			return err
		}
		if cli.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		out, err := cli.RenderMarkdown(ws.Outline())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [events.yaml]",
	Short: "Check the demo workspace for structural consistency",
	Long: `Crawls the palette and script and reports structural violations: missing
regions, misplaced header items, overfilled or mistyped sockets and nodes left
hidden or pinned. With a replay script, the events are applied first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := newWorkspace(cmd, false)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			if err := cli.Replay(cmd.Context(), cli.NewEngine(ws), f, cmd.OutOrStdout()); err != nil {
				return err
			}
		}

		if err := validator.ValidateTree(ws.Editor.Tree(), ws.Roots()...); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Workspace is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

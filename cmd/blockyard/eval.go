package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval [block]",
	Short: "Run the demo script, or evaluate one named block",
	Long: `Without arguments, runs every statement of the demo script in order.
With a block name, evaluates that block and prints its result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := newWorkspace(cmd, false)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if len(args) == 0 {
			_, err := ws.Editor.Run(ctx, ws.Demo.Script)
			return err
		}

		id := ws.Editor.Tree().Find(args[0])
		if id == domain.NoNode {
			return fmt.Errorf("no block named %q: %w", args[0], domain.ErrNodeNotFound)
		}
		result, err := ws.Editor.Evaluate(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

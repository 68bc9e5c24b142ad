package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <events.yaml>",
	Short: "Replay a recorded list of UI events against the demo workspace",
	Long: `Reads a YAML list of events (drag-start, dragging, drop, drag-cancel, click)
and applies them in order. Node references may be given as block names, and
"over: <name>" places the pointer on that block's outline line.

Example:

  - {type: drag-start, target: palette-log, over: palette-log}
  - {type: dragging, over: greet}
  - {type: drop}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withMetrics, _ := cmd.Flags().GetBool("metrics")
		run, _ := cmd.Flags().GetBool("run")

		ws, err := newWorkspace(cmd, withMetrics)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		if err := cli.Replay(ctx, cli.NewEngine(ws), f, out); err != nil {
			return err
		}

		md, err := cli.RenderMarkdown(ws.Outline())
		if err != nil {
			return err
		}
		fmt.Fprint(out, "\n"+md)

		if run {
			if _, err := ws.Editor.Run(ctx, ws.Demo.Script); err != nil {
				return err
			}
		}
		if ws.Metrics != nil {
			fmt.Fprintln(out)
			return ws.Metrics.WriteSummary(out)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().Bool("metrics", false, "Print engine metrics after the replay")
	replayCmd.Flags().Bool("run", false, "Run the script once the replay finishes")
	rootCmd.AddCommand(replayCmd)
}

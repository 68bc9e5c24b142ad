package main

import (
	"fmt"

	"github.com/aretw0/blockyard/internal/presentation/graph"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [block...]",
	Short: "Export the workspace as a Mermaid diagram",
	Long:  `Outputs a Mermaid diagram (graph TD) of the demo palette and script. Named blocks given as arguments are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := newWorkspace(cmd, false)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if len(args) > 0 {
			overlay = &graph.Overlay{Current: domain.NoNode}
			for _, name := range args {
				id := ws.Editor.Tree().Find(name)
				if id == domain.NoNode {
					return fmt.Errorf("no block named %q: %w", name, domain.ErrNodeNotFound)
				}
				overlay.Highlighted = append(overlay.Highlighted, id)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), ws.Graph(overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

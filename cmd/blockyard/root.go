package main

import (
	"fmt"
	"os"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blockyard",
	Short: "Blockyard is a block-based visual programming engine",
	Long: `Blockyard builds scripts out of nested blocks: statements, contexts and
expressions plugged into typed value sockets. The CLI drives the demo
workspace from the terminal: inspect it, replay drag sessions and run scripts.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging of engine events")
}

// newWorkspace loads the configuration named by the persistent flags and
// builds the demo workspace.
func newWorkspace(cmd *cobra.Command, metrics bool) (*cli.Workspace, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	opts := cli.Options{Config: cfg, Debug: debug, Metrics: metrics, Out: cmd.OutOrStdout()}
	logger, err := cli.NewLogger(opts)
	if err != nil {
		return nil, err
	}
	return cli.NewWorkspace(opts, logger)
}

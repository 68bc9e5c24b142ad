package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/blockyard/internal/adapters/http"
	"github.com/aretw0/blockyard/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo workspace over HTTP",
	Long: `Starts an HTTP bridge for browser front ends. POST /events applies pointer
events, GET /events streams their reports, and GET /outline, /graph and
/metrics expose the current state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")

		ws, err := newWorkspace(cmd, true)
		if err != nil {
			return err
		}
		handler := httpAdapter.NewHandler(cli.NewEngine(ws),
			httpAdapter.WithGatherer(ws.Registry),
			httpAdapter.WithLogger(ws.Logger),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(cmd.OutOrStdout(), "Starting blockyard server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			fmt.Fprintf(cmd.OutOrStdout(), "\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "blockyard server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

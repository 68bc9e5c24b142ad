// Package testutils holds fixtures shared by adapter and command tests.
package testutils

import (
	"io"
	"testing"

	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/config"
	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/internal/validator"
	"github.com/stretchr/testify/require"
)

// SetupWorkspace builds the demo workspace with the default configuration.
// Script and notifier output go to out, which may be nil.
// It fails the test immediately on error.
func SetupWorkspace(t *testing.T, out io.Writer, metrics bool) *cli.Workspace {
	t.Helper()

	opts := cli.Options{Config: config.Default(), Metrics: metrics, Out: out}
	ws, err := cli.NewWorkspace(opts, logging.NewNop())
	require.NoError(t, err, "Failed to build demo workspace")
	return ws
}

// RequireValid fails the test when the workspace tree is not well-formed.
func RequireValid(t *testing.T, ws *cli.Workspace) {
	t.Helper()
	require.NoError(t, validator.ValidateTree(ws.Editor.Tree(), ws.Roots()...))
}

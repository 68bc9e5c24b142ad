package mcp_test

import (
	"context"
	"testing"

	"github.com/aretw0/blockyard/internal/adapters/mcp"
	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/testutils"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *mcp.Server {
	t.Helper()
	return mcp.NewServer(cli.NewEngine(testutils.SetupWorkspace(t, nil, false)))
}

func TestEventArgs_Fields(t *testing.T) {
	x := 3.5
	args := mcp.EventArgs{Type: "drag-start", Target: "12", Over: "greet", X: &x}
	assert.Equal(t, map[string]any{
		"type":   "drag-start",
		"target": 12,
		"over":   "greet",
		"x":      3.5,
	}, args.Fields())
}

func TestHandleEvent(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	req := mcplib.CallToolRequest{}

	rep, err := s.HandleEvent(ctx, req, mcp.EventArgs{Type: "drag-start", Target: "palette-add", Over: "palette-add"})
	require.NoError(t, err)
	assert.True(t, rep.Copy)

	rep, err = s.HandleEvent(ctx, req, mcp.EventArgs{Type: "dragging", Over: "greeting"})
	require.NoError(t, err)
	assert.Equal(t, "none", rep.Candidate)
	assert.Equal(t, "cannot drop a number block on a text value", rep.Message)

	rep, err = s.HandleEvent(ctx, req, mcp.EventArgs{Type: "drag-cancel"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", string(rep.Outcome))

	_, err = s.HandleEvent(ctx, req, mcp.EventArgs{Type: "wiggle"})
	assert.Error(t, err)
}

func TestHandleEvaluateAndRun(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	got, err := s.HandleEvaluate(ctx, mcplib.CallToolRequest{}, mcp.EvaluateArgs{Name: "sum"})
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Result)

	_, err = s.HandleEvaluate(ctx, mcplib.CallToolRequest{}, mcp.EvaluateArgs{Name: "nobody"})
	assert.Error(t, err)

	run, err := s.HandleRun(ctx, mcplib.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Len(t, run.Results, 5)
}

// Package mcp exposes a workspace as a Model Context Protocol server, so that
// agents can drive drag sessions and evaluate blocks as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/blockyard"
	"github.com/aretw0/blockyard/internal/cli"
	"github.com/aretw0/blockyard/internal/logging"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	graphURI   = "blockyard://graph"
	outlineURI = "blockyard://outline"
)

// Engine is the workspace surface exposed as tools.
type Engine interface {
	Apply(ctx context.Context, fields map[string]any) (cli.Report, error)
	Evaluate(ctx context.Context, name string) (any, error)
	Run(ctx context.Context) ([]any, error)
	Outline() string
	Graph() string
}

var _ Engine = (*cli.Engine)(nil)

// EventArgs are the arguments of the send_event tool.
type EventArgs struct {
	Type   string   `json:"type"`
	Target string   `json:"target,omitempty"`
	Over   string   `json:"over,omitempty"`
	Action string   `json:"action,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// Fields converts the arguments to an event map. Numeric node references are
// ids, anything else is a block name.
func (a EventArgs) Fields() map[string]any {
	fields := map[string]any{"type": a.Type}
	ref := func(key, v string) {
		if v == "" {
			return
		}
		if id, err := strconv.Atoi(v); err == nil {
			fields[key] = id
			return
		}
		fields[key] = v
	}
	ref("target", a.Target)
	ref("over", a.Over)
	if a.Action != "" {
		fields["action"] = a.Action
	}
	if a.X != nil {
		fields["x"] = *a.X
	}
	if a.Y != nil {
		fields["y"] = *a.Y
	}
	return fields
}

// EvaluateArgs are the arguments of the evaluate_block tool.
type EvaluateArgs struct {
	Name string `json:"name"`
}

// EvaluateResponse carries a block's value.
type EvaluateResponse struct {
	Result any `json:"result" jsonschema_description:"The value the block evaluated to"`
}

// RunResponse carries the values of the script's statements, in order.
type RunResponse struct {
	Results []any `json:"results" jsonschema_description:"One value per statement of the script"`
}

// Server wraps an Engine as an MCP server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("blockyard-mcp", strings.TrimSpace(blockyard.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over server-sent events on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("send_event",
		mcp.WithDescription("Apply one pointer event to the workspace: drag-start, dragging, drop, drag-cancel or click."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Event type")),
		mcp.WithString("target", mcp.Description("Block name or node id (drag-start, click)")),
		mcp.WithString("over", mcp.Description("Place the pointer on this block's outline line")),
		mcp.WithString("action", mcp.Description("Click action: add-item or remove-item")),
		mcp.WithNumber("x", mcp.Description("Pointer x coordinate")),
		mcp.WithNumber("y", mcp.Description("Pointer y coordinate")),
		mcp.WithOutputSchema[cli.Report](),
	), mcp.NewStructuredToolHandler(s.HandleEvent))

	s.mcpServer.AddTool(mcp.NewTool("evaluate_block",
		mcp.WithDescription("Evaluate a named block and return its value."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Block name")),
		mcp.WithOutputSchema[EvaluateResponse](),
	), mcp.NewStructuredToolHandler(s.HandleEvaluate))

	s.mcpServer.AddTool(mcp.NewTool("run_script",
		mcp.WithDescription("Run every statement of the workspace script in order."),
		mcp.WithOutputSchema[RunResponse](),
	), mcp.NewStructuredToolHandler(s.HandleRun))
}

// HandleEvent implements the send_event tool.
func (s *Server) HandleEvent(ctx context.Context, _ mcp.CallToolRequest, args EventArgs) (cli.Report, error) {
	rep, err := s.engine.Apply(ctx, args.Fields())
	if err != nil {
		s.logger.Warn("mcp event rejected", "type", args.Type, "err", err)
		return rep, err
	}
	return rep, nil
}

// HandleEvaluate implements the evaluate_block tool.
func (s *Server) HandleEvaluate(ctx context.Context, _ mcp.CallToolRequest, args EvaluateArgs) (EvaluateResponse, error) {
	result, err := s.engine.Evaluate(ctx, args.Name)
	if err != nil {
		return EvaluateResponse{}, fmt.Errorf("evaluate failed: %w", err)
	}
	return EvaluateResponse{Result: result}, nil
}

// HandleRun implements the run_script tool.
func (s *Server) HandleRun(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (RunResponse, error) {
	results, err := s.engine.Run(ctx)
	if err != nil {
		return RunResponse{}, fmt.Errorf("run failed: %w", err)
	}
	return RunResponse{Results: results}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Workspace Mermaid diagram",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: graphURI, MIMEType: "text/plain", Text: s.engine.Graph()},
		}, nil
	})

	s.mcpServer.AddResource(mcp.NewResource(outlineURI, "Workspace outline with pointer coordinates",
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: outlineURI, MIMEType: "text/markdown", Text: s.engine.Outline()},
		}, nil
	})
}

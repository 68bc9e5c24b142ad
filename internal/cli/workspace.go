// Package cli holds the logic behind the blockyard commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/blockyard"
	"github.com/aretw0/blockyard/internal/config"
	"github.com/aretw0/blockyard/internal/demo"
	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/internal/presentation/tui"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/observability"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// Options are the settings shared by every command.
type Options struct {
	Config  config.Config
	Debug   bool
	Metrics bool
	// Out receives command output, including notifier messages.
	Out io.Writer
}

// Workspace is the demo workspace wired to an Editor and an outline layout.
type Workspace struct {
	Editor   *blockyard.Editor
	Layout   *layout.Layout
	Demo     *demo.Workspace
	Metrics  *observability.Metrics
	// Registry holds the collectors when metrics are enabled.
	Registry *prometheus.Registry
	Logger   *slog.Logger

	notes *printer
}

// NewWorkspace builds the demo workspace with the configured stack.
func NewWorkspace(opts Options, logger *slog.Logger) (*Workspace, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	t := tree.New(tree.WithLogger(logger))
	ws, err := demo.Build(t)
	if err != nil {
		return nil, fmt.Errorf("failed to build demo workspace: %w", err)
	}

	l := layout.New(t, opts.Config.Layout)
	l.AddPalette(ws.Palette...)
	l.AddCanvas(ws.Script)

	hooks := domain.LifecycleHooks{}
	if opts.Debug {
		hooks = observability.LoggingHooks(logger)
	}
	var (
		metrics *observability.Metrics
		reg     *prometheus.Registry
	)
	if opts.Metrics {
		reg = prometheus.NewRegistry()
		metrics = observability.NewMetrics(reg)
		hooks = hooks.Merge(metrics.Hooks())
	}
	notes := &printer{out: opts.Out}

	ed := blockyard.New(
		blockyard.WithTree(t),
		blockyard.WithLogger(logger),
		blockyard.WithLifecycleHooks(hooks),
		blockyard.WithResolver(demo.NewRegistry(opts.Out)),
		blockyard.WithNotifier(notes),
		blockyard.WithHitTester(l),
		blockyard.WithDeletionSurface(l),
		blockyard.WithGhostOffset(opts.Config.Drag.GhostOffset),
	)
	return &Workspace{
		Editor:   ed,
		Layout:   l,
		Demo:     ws,
		Metrics:  metrics,
		Registry: reg,
		Logger:   logger,
		notes:    notes,
	}, nil
}

// Roots returns the palette roots followed by the script.
func (w *Workspace) Roots() []domain.NodeID {
	return append(append([]domain.NodeID{}, w.Demo.Palette...), w.Demo.Script)
}

// NewLogger configures the application logger. --debug wins over the
// configured level.
func NewLogger(opts Options) (*slog.Logger, error) {
	if opts.Debug {
		return logging.New(slog.LevelDebug), nil
	}
	level, err := logging.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// printer shows notifier messages, skipping repeats while the pointer moves.
type printer struct {
	out  io.Writer
	last string
}

func (p *printer) Warn(msg string) {
	if msg == "" || msg == p.last {
		return
	}
	p.last = msg
	tui.Warn(p.out, msg)
}

func (p *printer) Info(msg string) {
	p.last = ""
	if msg != "" {
		fmt.Fprintln(p.out, msg)
	}
}

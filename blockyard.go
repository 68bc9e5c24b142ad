package blockyard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/internal/runtime"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/drag"
	"github.com/aretw0/blockyard/pkg/eval"
	"github.com/aretw0/blockyard/pkg/ports"
	"github.com/aretw0/blockyard/pkg/rows"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Editor is the high-level entry point of the library.
// It owns one block tree and wires the lifecycle, evaluation, drag-transfer
// and row editing components around it.
type Editor struct {
	tree       *tree.Tree
	evaluator  *eval.Evaluator
	drag       *drag.Machine
	rows       *rows.Editor
	dispatcher *runtime.Dispatcher

	resolver    ports.Resolver
	notifier    ports.Notifier
	hits        ports.HitTester
	surface     ports.DeletionSurface
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	ghostOffset float64
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithResolver sets where block behaviors come from.
func WithResolver(r ports.Resolver) Option {
	return func(e *Editor) {
		e.resolver = r
	}
}

// WithNotifier sets the receiver of drag advisories.
func WithNotifier(n ports.Notifier) Option {
	return func(e *Editor) {
		e.notifier = n
	}
}

// WithHitTester sets the renderer's pointer-to-node mapping.
func WithHitTester(h ports.HitTester) Option {
	return func(e *Editor) {
		e.hits = h
	}
}

// WithDeletionSurface sets the surface that deletes dropped blocks.
func WithDeletionSurface(s ports.DeletionSurface) Option {
	return func(e *Editor) {
		e.surface = s
	}
}

// WithGhostOffset overrides the pointer-to-ghost offset.
func WithGhostOffset(offset float64) Option {
	return func(e *Editor) {
		e.ghostOffset = offset
	}
}

// WithTree edits an existing tree instead of a new one. Hooks already
// registered on the tree keep firing.
func WithTree(t *tree.Tree) Option {
	return func(e *Editor) {
		e.tree = t
	}
}

// New creates an Editor.
func New(opts ...Option) *Editor {
	e := &Editor{
		notifier:    ports.NopNotifier{},
		hits:        ports.MissHitTester{},
		surface:     ports.NopDeletionSurface{},
		ghostOffset: drag.DefaultGhostOffset,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.tree == nil {
		e.tree = tree.New()
	}

	e.evaluator = eval.New(e.tree, e.resolver,
		eval.WithLogger(e.logger),
		eval.WithHooks(e.hooks),
	)
	e.tree.SetHooks(e.tree.Hooks().Merge(e.hooks).Merge(e.invalidationHooks()))
	e.drag = drag.New(e.tree,
		drag.WithNotifier(e.notifier),
		drag.WithHitTester(e.hits),
		drag.WithDeletionSurface(e.surface),
		drag.WithLogger(e.logger),
		drag.WithHooks(e.hooks),
		drag.WithGhostOffset(e.ghostOffset),
	)
	e.rows = rows.New(e.tree, rows.WithLogger(e.logger))
	e.dispatcher = runtime.NewDispatcher(e.drag, e.rows, runtime.WithLogger(e.logger))
	return e
}

// invalidationHooks drop cached argument lists of blocks whose headers change,
// and every cache entry of a removed subtree.
func (e *Editor) invalidationHooks() domain.LifecycleHooks {
	invalidate := func(_ context.Context, m *domain.MutationEvent) {
		for _, parent := range []domain.NodeID{m.OldParent, m.NewParent} {
			if block := e.tree.Closest(parent, tree.Blocks); block != domain.NoNode {
				e.evaluator.Invalidate(block)
			}
		}
	}
	return domain.LifecycleHooks{
		OnInsert:   invalidate,
		OnRelocate: invalidate,
		OnRemove: func(ctx context.Context, m *domain.MutationEvent) {
			invalidate(ctx, m)
			e.tree.Walk(m.Node, func(id domain.NodeID, _ int) bool {
				e.evaluator.Invalidate(id)
				return true
			})
		},
	}
}

// Tree returns the edited tree.
func (e *Editor) Tree() *tree.Tree {
	return e.tree
}

// Drag returns the drag-transfer state machine.
func (e *Editor) Drag() *drag.Machine {
	return e.drag
}

// Evaluator returns the block evaluator.
func (e *Editor) Evaluator() *eval.Evaluator {
	return e.evaluator
}

// Rows returns the row editor.
func (e *Editor) Rows() *rows.Editor {
	return e.rows
}

// Handle applies one normalized UI event.
func (e *Editor) Handle(ctx context.Context, ev domain.Event) (runtime.Result, error) {
	return e.dispatcher.Handle(ctx, ev)
}

// Evaluate computes the value of a block, row or value socket.
func (e *Editor) Evaluate(ctx context.Context, id domain.NodeID) (any, error) {
	return e.evaluator.Evaluate(ctx, id)
}

// Run runs every statement of a script (a context block) in order.
func (e *Editor) Run(ctx context.Context, script domain.NodeID) ([]any, error) {
	contains := e.tree.Child(script, tree.AnyOf(domain.KindContains))
	if contains == domain.NoNode {
		return nil, fmt.Errorf("run %d: a %s holds no statements", script, e.tree.Kind(script))
	}
	return e.evaluator.RunAll(ctx, contains)
}

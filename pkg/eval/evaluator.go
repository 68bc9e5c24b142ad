package eval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/ports"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/aretw0/blockyard/pkg/types"
)

// Evaluator computes values from a tree.
type Evaluator struct {
	tree     *tree.Tree
	resolver ports.Resolver
	logger   *slog.Logger
	hooks    domain.LifecycleHooks

	args map[domain.NodeID][]domain.NodeID
	fns  map[domain.NodeID]domain.Behavior
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// WithHooks registers evaluation observers (OnEvaluate).
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Evaluator) {
		e.hooks = hooks
	}
}

// New creates an evaluator reading t and resolving behaviors through resolver.
func New(t *tree.Tree, resolver ports.Resolver, opts ...Option) *Evaluator {
	e := &Evaluator{
		tree:     t,
		resolver: resolver,
		logger:   logging.NewNop(),
		args:     make(map[domain.NodeID][]domain.NodeID),
		fns:      make(map[domain.NodeID]domain.Behavior),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Invalidate drops the cached argument list and behavior of a block.
func (e *Evaluator) Invalidate(id domain.NodeID) {
	delete(e.args, id)
	delete(e.fns, id)
}

// Cached reports whether id has a cached argument list or behavior.
func (e *Evaluator) Cached(id domain.NodeID) bool {
	_, args := e.args[id]
	_, fn := e.fns[id]
	return args || fn
}

// InvalidateAll drops every cache.
func (e *Evaluator) InvalidateAll() {
	clear(e.args)
	clear(e.fns)
}

// Evaluate computes the value of a block, row or value socket.
func (e *Evaluator) Evaluate(ctx context.Context, id domain.NodeID) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch kind := e.tree.Kind(id); kind {
	case domain.KindStep, domain.KindContext, domain.KindExpression:
		return e.runBlock(ctx, id)
	case domain.KindRow:
		return e.row(ctx, id)
	case domain.KindValue:
		return e.value(ctx, id)
	case "":
		return nil, fmt.Errorf("evaluate %d: %w", id, domain.ErrNodeNotFound)
	default:
		return nil, fmt.Errorf("evaluate %d: a %s has no value", id, kind)
	}
}

// RunAll runs every statement of a contains region in order.
func (e *Evaluator) RunAll(ctx context.Context, contains domain.NodeID) ([]any, error) {
	var results []any
	for _, stmt := range e.tree.ChildrenMatching(contains, tree.Statements) {
		v, err := e.Evaluate(ctx, stmt)
		if err != nil {
			return results, err
		}
		results = append(results, v)
	}
	return results, nil
}

func (e *Evaluator) runBlock(ctx context.Context, id domain.NodeID) (any, error) {
	fn, err := e.behavior(id)
	if err != nil {
		return nil, err
	}

	args, err := e.gather(ctx, id)
	if err != nil {
		return nil, err
	}

	ref := e.tree.Attr(id, domain.AttrScriptRef)
	e.logger.Debug("running block", "node", id, "script", ref, "args", len(args))

	start := time.Now()
	result, err := fn(withFrame(ctx, e, id), args)
	e.emitEvaluate(ctx, id, ref, time.Since(start), err != nil)
	if err != nil {
		return nil, &BehaviorError{Node: id, ScriptRef: ref, Err: err}
	}
	return result, nil
}

// behavior resolves the block's scriptRef once and caches it.
func (e *Evaluator) behavior(id domain.NodeID) (domain.Behavior, error) {
	if fn, ok := e.fns[id]; ok {
		return fn, nil
	}
	ref := e.tree.Attr(id, domain.AttrScriptRef)
	if e.resolver == nil {
		return nil, &ConfigurationError{Node: id, ScriptRef: ref, Err: domain.ErrUnresolvedScript}
	}
	fn, err := e.resolver.Resolve(ref)
	if err != nil {
		e.logger.Error("unresolved script", "node", id, "script", ref, "err", err)
		return nil, &ConfigurationError{Node: id, ScriptRef: ref, Err: err}
	}
	e.fns[id] = fn
	return fn, nil
}

// gather evaluates the argument sockets found directly under the header.
func (e *Evaluator) gather(ctx context.Context, id domain.NodeID) ([]any, error) {
	sockets, ok := e.args[id]
	if !ok {
		sockets = e.tree.ChildrenMatching(e.tree.Header(id), tree.Arguments)
		e.args[id] = sockets
	}
	args := make([]any, 0, len(sockets))
	for _, socket := range sockets {
		v, err := e.Evaluate(ctx, socket)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

func (e *Evaluator) row(ctx context.Context, id domain.NodeID) (any, error) {
	values := e.tree.ChildrenMatching(id, tree.AnyOf(domain.KindValue))
	switch len(values) {
	case 0:
		return nil, nil
	case 1:
		return e.value(ctx, values[0])
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		r, err := e.value(ctx, v)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (e *Evaluator) value(ctx context.Context, id domain.NodeID) (any, error) {
	if expr := e.tree.Child(id, tree.AnyOf(domain.KindExpression)); expr != domain.NoNode {
		return e.Evaluate(ctx, expr)
	}
	literal := e.tree.Child(id, tree.Literals)
	if literal == domain.NoNode {
		return nil, nil
	}
	// Multi-type sockets have no single conversion and yield the raw text.
	declared := types.Type(strings.TrimSpace(e.tree.Attr(id, domain.AttrValueType)))
	return types.Convert(declared, e.tree.Text(literal)), nil
}

func (e *Evaluator) emitEvaluate(ctx context.Context, id domain.NodeID, ref string, d time.Duration, isErr bool) {
	if e.hooks.OnEvaluate == nil {
		return
	}
	e.hooks.OnEvaluate(ctx, &domain.EvalEvent{
		Timestamp: time.Now(),
		Node:      id,
		ScriptRef: ref,
		Duration:  d,
		IsError:   isErr,
	})
}

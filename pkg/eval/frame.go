package eval

import (
	"context"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
)

type frameKey struct{}

type frame struct {
	evaluator *Evaluator
	block     domain.NodeID
}

func withFrame(ctx context.Context, e *Evaluator, block domain.NodeID) context.Context {
	return context.WithValue(ctx, frameKey{}, frame{evaluator: e, block: block})
}

// Block returns the block whose behavior is running.
func Block(ctx context.Context) (domain.NodeID, bool) {
	f, ok := ctx.Value(frameKey{}).(frame)
	if !ok {
		return domain.NoNode, false
	}
	return f.block, true
}

// Body runs the statements nested in the contains region of the running
// context block. Behaviors of control blocks (loops, conditionals) call it
// zero or more times. It returns nil results outside a context block.
func Body(ctx context.Context) ([]any, error) {
	f, ok := ctx.Value(frameKey{}).(frame)
	if !ok {
		return nil, nil
	}
	contains := f.evaluator.tree.Child(f.block, tree.AnyOf(domain.KindContains))
	if contains == domain.NoNode {
		return nil, nil
	}
	return f.evaluator.RunAll(ctx, contains)
}

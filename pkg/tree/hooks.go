package tree

import (
	"context"
	"time"

	"github.com/aretw0/blockyard/pkg/domain"
)

func (t *Tree) emitPhase(fn func(context.Context, *domain.PhaseEvent), n *node) {
	if fn == nil {
		return
	}
	fn(t.ctx, &domain.PhaseEvent{
		Timestamp: time.Now(),
		Node:      n.id,
		Kind:      n.kind,
		Phase:     n.phase,
		Parent:    n.parent,
	})
}

func (t *Tree) emitMutation(fn func(context.Context, *domain.MutationEvent), typ domain.MutationType, n *node, oldParent, newParent domain.NodeID, index int) {
	if fn == nil {
		return
	}
	fn(t.ctx, &domain.MutationEvent{
		Timestamp: time.Now(),
		Type:      typ,
		Node:      n.id,
		Kind:      n.kind,
		OldParent: oldParent,
		NewParent: newParent,
		Index:     index,
	})
}

package domain

import (
	"context"
	"time"
)

// MutationType names a structural change.
type MutationType string

const (
	MutationInsert   MutationType = "insert"
	MutationRemove   MutationType = "remove"
	MutationRelocate MutationType = "relocate"
)

// MutationEvent describes a structural change, with enough detail for a
// renderer to keep its projection in sync.
type MutationEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	Type      MutationType `json:"type"`
	Node      NodeID       `json:"node"`
	Kind      Kind         `json:"kind"`
	OldParent NodeID       `json:"old_parent"`
	NewParent NodeID       `json:"new_parent"`
	Index     int          `json:"index"`
}

// PhaseEvent reports a lifecycle transition of a node.
type PhaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Node      NodeID    `json:"node"`
	Kind      Kind      `json:"kind"`
	Phase     Phase     `json:"phase"`
	Parent    NodeID    `json:"parent"`
}

// DragEvent reports drag session milestones.
type DragEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	Origin     NodeID    `json:"origin"`
	Ghost      NodeID    `json:"ghost"`
	OriginKind string    `json:"origin_kind"`
	Outcome    string    `json:"outcome,omitempty"`
}

// EvalEvent reports a block evaluation.
type EvalEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Node      NodeID        `json:"node"`
	ScriptRef string        `json:"script_ref"`
	Duration  time.Duration `json:"duration"`
	IsError   bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnCreated  func(context.Context, *PhaseEvent)
	OnAttached func(context.Context, *PhaseEvent)
	OnDetached func(context.Context, *PhaseEvent)

	OnInsert   func(context.Context, *MutationEvent)
	OnRemove   func(context.Context, *MutationEvent)
	OnRelocate func(context.Context, *MutationEvent)

	OnDragStart  func(context.Context, *DragEvent)
	OnDrop       func(context.Context, *DragEvent)
	OnDragCancel func(context.Context, *DragEvent)

	OnEvaluate func(context.Context, *EvalEvent)
}

// Merge returns hooks that call h first and then other, for every callback.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCreated:    chain(h.OnCreated, other.OnCreated),
		OnAttached:   chain(h.OnAttached, other.OnAttached),
		OnDetached:   chain(h.OnDetached, other.OnDetached),
		OnInsert:     chain(h.OnInsert, other.OnInsert),
		OnRemove:     chain(h.OnRemove, other.OnRemove),
		OnRelocate:   chain(h.OnRelocate, other.OnRelocate),
		OnDragStart:  chain(h.OnDragStart, other.OnDragStart),
		OnDrop:       chain(h.OnDrop, other.OnDrop),
		OnDragCancel: chain(h.OnDragCancel, other.OnDragCancel),
		OnEvaluate:   chain(h.OnEvaluate, other.OnEvaluate),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}

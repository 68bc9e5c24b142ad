package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/blockyard/pkg/domain"
)

// LoggingHooks logs drag sessions and evaluations at info level and tree
// mutations at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	mutation := func(ctx context.Context, e *domain.MutationEvent) {
		logger.DebugContext(ctx, "tree mutation",
			"type", e.Type,
			"node", e.Node,
			"kind", e.Kind,
			"from", e.OldParent,
			"to", e.NewParent,
			"index", e.Index,
		)
	}
	drag := func(msg string) func(context.Context, *domain.DragEvent) {
		return func(ctx context.Context, e *domain.DragEvent) {
			logger.InfoContext(ctx, msg,
				"session", e.SessionID,
				"origin", e.Origin,
				"origin_kind", e.OriginKind,
				"outcome", e.Outcome,
			)
		}
	}
	return domain.LifecycleHooks{
		OnInsert:     mutation,
		OnRemove:     mutation,
		OnRelocate:   mutation,
		OnDragStart:  drag("drag start"),
		OnDrop:       drag("drop"),
		OnDragCancel: drag("drag cancel"),
		OnEvaluate: func(ctx context.Context, e *domain.EvalEvent) {
			logger.InfoContext(ctx, "evaluate",
				"node", e.Node,
				"script", e.ScriptRef,
				"duration", e.Duration,
				"is_error", e.IsError,
			)
		},
	}
}

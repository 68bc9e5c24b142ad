package domain

import "context"

// Behavior is the invocable a block's scriptRef resolves to.
// It receives the block's evaluated arguments in header order.
type Behavior func(ctx context.Context, args []any) (any, error)

package eval

import (
	"fmt"

	"github.com/aretw0/blockyard/pkg/domain"
)

// ConfigurationError reports a block whose scriptRef cannot be resolved.
// It signals a malformed or incompletely authored script and is never retried.
type ConfigurationError struct {
	Node      domain.NodeID
	ScriptRef string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("node %d: cannot resolve script %q: %v", e.Node, e.ScriptRef, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// BehaviorError wraps an error returned by a block's behavior.
type BehaviorError struct {
	Node      domain.NodeID
	ScriptRef string
	Err       error
}

func (e *BehaviorError) Error() string {
	return fmt.Sprintf("node %d: %s failed: %v", e.Node, e.ScriptRef, e.Err)
}

func (e *BehaviorError) Unwrap() error {
	return e.Err
}

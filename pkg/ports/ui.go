package ports

import "github.com/aretw0/blockyard/pkg/domain"

// Notifier shows transient, advisory text to the operator.
type Notifier interface {
	Warn(message string)
	Info(message string)
}

// Hit is the result of hit-testing a pointer position.
type Hit struct {
	// Node is the deepest node under the pointer, or domain.NoNode.
	Node domain.NodeID
	// DeletionSurface is true when the pointer is over the deletion surface.
	DeletionSurface bool
}

// HitTester maps pointer positions to nodes of the rendered tree.
// Implementations must not report the drag ghost itself.
type HitTester interface {
	HitTest(p domain.Point) Hit
}

// DeletionSurface is the UI region that deletes blocks dropped on it.
type DeletionSurface interface {
	// SetActive highlights the surface while a drag is in progress.
	SetActive(active bool)
}

// NopNotifier discards every message.
type NopNotifier struct{}

func (NopNotifier) Warn(string) {}
func (NopNotifier) Info(string) {}

// NopDeletionSurface ignores activation.
type NopDeletionSurface struct{}

func (NopDeletionSurface) SetActive(bool) {}

// MissHitTester never hits anything.
type MissHitTester struct{}

func (MissHitTester) HitTest(domain.Point) Hit {
	return Hit{Node: domain.NoNode}
}

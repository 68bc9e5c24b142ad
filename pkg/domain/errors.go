package domain

import "errors"

// ErrNodeNotFound is returned when a NodeID does not resolve to a live node.
var ErrNodeNotFound = errors.New("node not found")

// ErrCycle is returned when a node would be attached under itself or one of its descendants.
var ErrCycle = errors.New("node cannot contain itself")

// ErrNodePinned is returned when a node referenced by an active drag session would be detached.
var ErrNodePinned = errors.New("node is referenced by an active drag session")

// ErrSocketOccupied is returned when a value socket already holds an expression or a selector.
var ErrSocketOccupied = errors.New("value already has an occupant")

// ErrNotASocket is returned when an occupant is offered to a node that is not a value.
var ErrNotASocket = errors.New("node is not a value socket")

// ErrUnresolvedScript is returned when a scriptRef does not name a registered behavior.
var ErrUnresolvedScript = errors.New("unresolved script reference")

// ErrDragInProgress is returned when a drag starts while another one is active.
var ErrDragInProgress = errors.New("a drag session is already active")

// ErrNoActiveSession is returned when a transition receives a session that is not the active one.
var ErrNoActiveSession = errors.New("no active drag session")

// ErrNotDraggable is returned when a drag starts on a node outside any block.
var ErrNotDraggable = errors.New("target is not inside a block")

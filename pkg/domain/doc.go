/*
Package domain contains the core vocabulary shared by every part of the block engine.

It defines node kinds and attributes, node identifiers, the normalized input events
consumed by the drag machine, lifecycle and mutation notifications, and the sentinel
errors returned across package boundaries. The package is kept pure: it holds no
tree state and performs no I/O.

# Key Entities

  - Kind: the tag of a tree node (Step, Context, Expression, Value, Row, ...).
  - NodeID: an index into the tree arena.
  - Event: a normalized UI event (drag-start, dragging, drop, drag-cancel, click).
  - LifecycleHooks: callbacks a renderer or metrics layer uses to follow the tree.
  - Behavior: the invocable a block's scriptRef resolves to.
*/
package domain

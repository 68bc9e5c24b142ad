/*
Package ports defines the driven ports (interfaces) of the block engine.

These interfaces decouple the engine from the UI shell and the script runtime,
so the engine can be embedded in any interface: a browser bridge, a terminal
front end, or a test harness.

# Key Interfaces

  - Resolver: resolves a block's scriptRef to an invocable behavior.
  - Notifier: shows transient operator guidance during a drag.
  - HitTester: finds the node (or the deletion surface) under the pointer.
  - DeletionSurface: the UI region that deletes blocks dropped on it.
*/
package ports

// Package drag implements the drag-transfer state machine.
//
// A Machine is either idle or owns exactly one Session. Start clones the
// dragged block into a free-floating ghost; Move re-evaluates the drop
// candidate under the pointer without touching the tree; Drop commits the
// transfer and Cancel discards it. Blocks dragged from a script (canvas
// origin) are moved, blocks dragged from anywhere else (palette origin) are
// copied.
package drag

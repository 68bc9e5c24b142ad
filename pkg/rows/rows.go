// Package rows edits repeated row groups, such as the items of a list
// literal, by cloning and removing sibling rows.
package rows

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Click actions understood by Editor.Click.
const (
	ActionAddItem    = "add-item"
	ActionRemoveItem = "remove-item"
)

// ErrNotARow is returned when a row operation targets another kind.
var ErrNotARow = errors.New("node is not a row")

var rowKind = tree.AnyOf(domain.KindRow)

// Editor adds and removes rows of one tree.
type Editor struct {
	tree   *tree.Tree
	logger *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New creates a row editor over t.
func New(t *tree.Tree, opts ...Option) *Editor {
	e := &Editor{tree: t, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddRow clones template with its structure and inserts the copy right
// after it.
func (e *Editor) AddRow(template domain.NodeID) (domain.NodeID, error) {
	if err := e.checkRow(template); err != nil {
		return domain.NoNode, err
	}
	row, err := e.tree.Clone(template)
	if err != nil {
		return domain.NoNode, err
	}
	if e.tree.Parent(template) == domain.NoNode {
		return row, nil
	}
	if err := e.tree.InsertAfter(template, row); err != nil {
		_ = e.tree.Delete(row)
		return domain.NoNode, fmt.Errorf("add row after %d: %w", template, err)
	}
	e.logger.Debug("row added", "template", template, "row", row)
	return row, nil
}

// RemoveRow removes row unless it is the last row of its parent.
// It reports whether the row was removed.
func (e *Editor) RemoveRow(row domain.NodeID) (bool, error) {
	if err := e.checkRow(row); err != nil {
		return false, err
	}
	parent := e.tree.Parent(row)
	if parent == domain.NoNode || len(e.tree.ChildrenMatching(parent, rowKind)) < 2 {
		e.logger.Debug("keeping last row", "row", row)
		return false, nil
	}
	if err := e.tree.Delete(row); err != nil {
		return false, fmt.Errorf("remove row %d: %w", row, err)
	}
	e.logger.Debug("row removed", "row", row, "parent", parent)
	return true, nil
}

// Click applies a row action to the row enclosing target. Only rows placed
// in a script respond; clicks elsewhere, unknown actions and targets outside
// any row are ignored. It reports whether the tree changed.
func (e *Editor) Click(target domain.NodeID, action string) (bool, error) {
	if !e.tree.Exists(target) {
		return false, fmt.Errorf("click %d: %w", target, domain.ErrNodeNotFound)
	}
	if !e.tree.Within(target, tree.AnyOf(domain.KindContains)) {
		return false, nil
	}
	row := e.tree.Closest(target, rowKind)
	if row == domain.NoNode {
		return false, nil
	}
	switch action {
	case ActionAddItem:
		_, err := e.AddRow(row)
		return err == nil, err
	case ActionRemoveItem:
		return e.RemoveRow(row)
	default:
		e.logger.Debug("ignoring click", "target", target, "action", action)
		return false, nil
	}
}

func (e *Editor) checkRow(id domain.NodeID) error {
	switch kind := e.tree.Kind(id); kind {
	case domain.KindRow:
		return nil
	case "":
		return fmt.Errorf("row %d: %w", id, domain.ErrNodeNotFound)
	default:
		return fmt.Errorf("%w: %d is a %s", ErrNotARow, id, kind)
	}
}

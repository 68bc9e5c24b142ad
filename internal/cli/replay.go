package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/blockyard/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Replay reads a YAML list of events and applies them in order, reporting
// each result on out. It stops at the first event that fails.
func Replay(ctx context.Context, e *Engine, script io.Reader, out io.Writer) error {
	var raw []map[string]any
	if err := yaml.NewDecoder(script).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse replay script: %w", err)
	}

	for i, fields := range raw {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep, err := e.Apply(ctx, fields)
		if err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "%d. %s\n", i+1, rep)
	}
	return nil
}

// pointOf places "over" references at the center of the node's outline line.
func (w *Workspace) pointOf(id domain.NodeID) (domain.Point, bool) {
	box, ok := w.Layout.Locate(id)
	if !ok {
		return domain.Point{}, false
	}
	return box.Rect.Center(), true
}

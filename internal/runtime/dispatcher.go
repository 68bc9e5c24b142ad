// Package runtime normalizes UI events into engine transitions.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/drag"
	"github.com/aretw0/blockyard/pkg/rows"
)

// ErrUnknownEvent is returned for events the dispatcher has no transition for.
var ErrUnknownEvent = errors.New("unknown event")

// Result describes what an event did.
type Result struct {
	Event     domain.EventType
	Session   *drag.Session
	Candidate drag.Candidate
	Outcome   drag.Outcome
	// Changed is true when a click edited the tree.
	Changed bool
	// Ignored is true for drag events that arrive while no drag is active.
	Ignored bool
}

// Dispatcher routes events to the drag machine and the row editor.
type Dispatcher struct {
	drag   *drag.Machine
	rows   *rows.Editor
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher wires the transitions of m and r.
func NewDispatcher(m *drag.Machine, r *rows.Editor, opts ...Option) *Dispatcher {
	d := &Dispatcher{drag: m, rows: r, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle applies one event. Pointer events that need an active drag are
// ignored while idle.
func (d *Dispatcher) Handle(ctx context.Context, ev domain.Event) (Result, error) {
	res := Result{Event: ev.Type()}
	session := d.drag.Active()

	switch e := ev.(type) {
	case domain.DragStart:
		s, err := d.drag.Start(ctx, e.Target, e.Point())
		if err != nil {
			return res, err
		}
		res.Session = s
	case domain.Dragging:
		if session == nil {
			return d.ignore(res), nil
		}
		c, err := d.drag.Move(ctx, session, e.Point())
		if err != nil {
			return res, err
		}
		res.Session, res.Candidate = session, c
	case domain.Drop:
		if session == nil {
			return d.ignore(res), nil
		}
		res.Session, res.Candidate = session, session.Candidate
		outcome, err := d.drag.Drop(ctx, session)
		res.Outcome = outcome
		if err != nil {
			return res, err
		}
	case domain.DragCancel:
		if session == nil {
			return d.ignore(res), nil
		}
		res.Session, res.Outcome = session, drag.OutcomeCancelled
		if err := d.drag.Cancel(ctx, session); err != nil {
			return res, err
		}
	case domain.Click:
		changed, err := d.rows.Click(e.Target, e.Action)
		res.Changed = changed
		if err != nil {
			return res, err
		}
	default:
		return res, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
	return res, nil
}

func (d *Dispatcher) ignore(res Result) Result {
	d.logger.Debug("ignoring event while idle", "event", res.Event)
	res.Ignored = true
	return res
}

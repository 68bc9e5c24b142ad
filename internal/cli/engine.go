package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/internal/runtime"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/drag"
)

// Report is the front-end view of one applied event.
type Report struct {
	Event     domain.EventType `json:"event"`
	Ignored   bool             `json:"ignored,omitempty"`
	Session   string           `json:"session,omitempty"`
	Origin    domain.NodeID    `json:"origin,omitempty"`
	Ghost     domain.NodeID    `json:"ghost,omitempty"`
	Copy      bool             `json:"copy,omitempty"`
	Candidate string           `json:"candidate,omitempty"`
	Target    domain.NodeID    `json:"target,omitempty"`
	Outcome   drag.Outcome     `json:"outcome,omitempty"`
	Changed   bool             `json:"changed,omitempty"`
	// Message is the guidance currently shown to the operator.
	Message string `json:"message,omitempty"`
}

func (r Report) String() string {
	if r.Ignored {
		return fmt.Sprintf("%s ignored (no drag in progress)", r.Event)
	}
	switch r.Event {
	case domain.EventDragStart:
		origin := drag.OriginCanvas
		if r.Copy {
			origin = drag.OriginPalette
		}
		return fmt.Sprintf("%s origin=%d (%s) ghost=%d", r.Event, r.Origin, origin, r.Ghost)
	case domain.EventDragging:
		if r.Candidate == drag.CandidateNone.String() {
			return fmt.Sprintf("%s no candidate", r.Event)
		}
		return fmt.Sprintf("%s candidate=%s node=%d", r.Event, r.Candidate, r.Target)
	case domain.EventDrop, domain.EventDragCancel:
		return fmt.Sprintf("%s outcome=%s", r.Event, r.Outcome)
	case domain.EventClick:
		return fmt.Sprintf("%s changed=%t", r.Event, r.Changed)
	default:
		return string(r.Event)
	}
}

// Engine serializes access to a Workspace so that concurrent front ends
// (HTTP, MCP) can share it. The tree itself is single-threaded.
type Engine struct {
	mu   sync.Mutex
	ws   *Workspace
	dec  *runtime.Decoder
	subs map[chan Report]struct{}
}

// NewEngine wraps ws.
func NewEngine(ws *Workspace) *Engine {
	return &Engine{
		ws:   ws,
		dec:  runtime.NewDecoder(ws.Editor.Tree(), ws.pointOf),
		subs: make(map[chan Report]struct{}),
	}
}

// Subscribe streams the report of every applied event until ctx is done.
// Slow subscribers miss reports rather than blocking Apply.
func (e *Engine) Subscribe(ctx context.Context) <-chan Report {
	ch := make(chan Report, 16)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()

	go func() {
		<-ctx.Done()
		e.mu.Lock()
		delete(e.subs, ch)
		close(ch)
		e.mu.Unlock()
	}()
	return ch
}

func (e *Engine) publish(rep Report) {
	for ch := range e.subs {
		select {
		case ch <- rep:
		default:
		}
	}
}

// Workspace returns the wrapped workspace. Callers must not use it
// concurrently with the Engine.
func (e *Engine) Workspace() *Workspace {
	return e.ws
}

// Apply decodes one event map and applies it.
func (e *Engine) Apply(ctx context.Context, fields map[string]any) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.dec.Decode(fields)
	if err != nil {
		return Report{}, err
	}
	res, err := e.ws.Editor.Handle(ctx, ev)
	rep := Report{
		Event:   res.Event,
		Ignored: res.Ignored,
		Outcome: res.Outcome,
		Changed: res.Changed,
		Message: e.ws.notes.last,
	}
	if s := res.Session; s != nil {
		rep.Session, rep.Origin, rep.Ghost = s.ID, s.Origin, s.Ghost
		rep.Copy = s.OriginKind == drag.OriginPalette
	}
	if res.Event == domain.EventDragging && !res.Ignored {
		rep.Candidate, rep.Target = res.Candidate.Kind.String(), res.Candidate.Node
	}
	if err != nil {
		return rep, fmt.Errorf("%s: %w", ev.Type(), err)
	}
	e.publish(rep)
	return rep, nil
}

// Evaluate evaluates the block named name.
func (e *Engine) Evaluate(ctx context.Context, name string) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.ws.Editor.Tree().Find(name)
	if id == domain.NoNode {
		return nil, fmt.Errorf("no block named %q: %w", name, domain.ErrNodeNotFound)
	}
	return e.ws.Editor.Evaluate(ctx, id)
}

// Run runs the demo script.
func (e *Engine) Run(ctx context.Context) ([]any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Editor.Run(ctx, e.ws.Demo.Script)
}

// Boxes returns the current outline layout.
func (e *Engine) Boxes() []layout.Box {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Layout.Boxes()
}

// Outline returns the current outline as Markdown.
func (e *Engine) Outline() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Outline()
}

// Graph returns the current Mermaid diagram, highlighting the active drag.
func (e *Engine) Graph() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ws.Graph(e.ws.dragOverlay())
}

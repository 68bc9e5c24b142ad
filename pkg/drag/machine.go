package drag

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/ports"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/google/uuid"
)

// DefaultGhostOffset is the distance between the pointer and the ghost's
// top-left corner.
const DefaultGhostOffset = 15

// Machine owns the drag session of one tree.
type Machine struct {
	tree     *tree.Tree
	notifier ports.Notifier
	hits     ports.HitTester
	surface  ports.DeletionSurface
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
	offset   float64

	active *Session
}

// Option configures a Machine.
type Option func(*Machine)

// WithNotifier sets where advisory messages go.
func WithNotifier(n ports.Notifier) Option {
	return func(m *Machine) {
		m.notifier = n
	}
}

// WithHitTester sets the pointer-to-node mapping used by Move.
func WithHitTester(h ports.HitTester) Option {
	return func(m *Machine) {
		m.hits = h
	}
}

// WithDeletionSurface sets the surface highlighted while dragging.
func WithDeletionSurface(s ports.DeletionSurface) Option {
	return func(m *Machine) {
		m.surface = s
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithHooks registers drag observers (OnDragStart, OnDrop, OnDragCancel).
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = hooks
	}
}

// WithGhostOffset overrides DefaultGhostOffset.
func WithGhostOffset(offset float64) Option {
	return func(m *Machine) {
		m.offset = offset
	}
}

// New creates an idle machine over t.
func New(t *tree.Tree, opts ...Option) *Machine {
	m := &Machine{
		tree:     t,
		notifier: ports.NopNotifier{},
		hits:     ports.MissHitTester{},
		surface:  ports.NopDeletionSurface{},
		logger:   logging.NewNop(),
		offset:   DefaultGhostOffset,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active returns the current session, or nil when idle.
func (m *Machine) Active() *Session {
	return m.active
}

// Start begins dragging the block enclosing target.
func (m *Machine) Start(ctx context.Context, target domain.NodeID, p domain.Point) (*Session, error) {
	if m.active != nil {
		return nil, fmt.Errorf("start drag on %d: %w (session %s)", target, domain.ErrDragInProgress, m.active.ID)
	}
	if !m.tree.Exists(target) {
		return nil, fmt.Errorf("start drag on %d: %w", target, domain.ErrNodeNotFound)
	}
	origin := m.tree.Closest(target, tree.Blocks)
	if origin == domain.NoNode {
		return nil, fmt.Errorf("start drag on %d: %w", target, domain.ErrNotDraggable)
	}

	ghost, err := m.tree.Clone(origin)
	if err != nil {
		return nil, fmt.Errorf("clone drag origin: %w", err)
	}

	s := &Session{
		ID:         uuid.NewString(),
		Origin:     origin,
		Ghost:      ghost,
		OriginKind: m.originKind(origin),
		Position:   p.Sub(m.offset),
		Candidate:  noCandidate,
	}
	if s.OriginKind == OriginCanvas {
		m.tree.SetHidden(origin, true)
		m.tree.Pin(origin)
	}
	m.active = s
	m.surface.SetActive(true)

	m.logger.Debug("drag started",
		"session", s.ID,
		"origin", origin,
		"kind", m.tree.Kind(origin),
		"origin_kind", s.OriginKind,
	)
	m.emit(ctx, m.hooks.OnDragStart, s, "")
	return s, nil
}

// originKind is canvas for blocks placed in a script. Expressions held by a
// local are variable templates and always copy.
func (m *Machine) originKind(origin domain.NodeID) OriginKind {
	if m.tree.Within(origin, tree.AnyOf(domain.KindContains)) &&
		!m.tree.Within(origin, tree.AnyOf(domain.KindLocal)) {
		return OriginCanvas
	}
	return OriginPalette
}

// Move follows the pointer and recomputes the drop candidate.
func (m *Machine) Move(ctx context.Context, s *Session, p domain.Point) (Candidate, error) {
	if err := m.check(s); err != nil {
		return noCandidate, err
	}
	s.Position = p.Sub(m.offset)

	candidate, message := m.candidate(s, m.hits.HitTest(p))
	s.Candidate = candidate
	s.Message = message
	m.notifier.Warn(message)
	return candidate, nil
}

// Drop commits the session and returns the machine to idle.
func (m *Machine) Drop(ctx context.Context, s *Session) (Outcome, error) {
	if err := m.check(s); err != nil {
		return OutcomeCancelled, err
	}
	defer m.reset(s)

	c := s.Candidate
	if c.Kind != CandidateDelete && c.Kind != CandidateNone && !m.tree.Exists(c.Node) {
		m.logger.Debug("drop target vanished", "session", s.ID, "target", c.Node)
		c = noCandidate
	}

	outcome, err := m.commit(s, c)
	if err != nil {
		m.logger.Warn("drop failed", "session", s.ID, "candidate", c.Kind, "err", err)
		m.discardGhost(s)
		outcome = OutcomeCancelled
	}
	m.emit(ctx, m.hooks.OnDrop, s, outcome)
	return outcome, err
}

func (m *Machine) commit(s *Session, c Candidate) (Outcome, error) {
	if c.Kind == CandidateNone {
		m.discardGhost(s)
		return OutcomeCancelled, nil
	}
	canvas := s.OriginKind == OriginCanvas

	if c.Kind == CandidateDelete {
		m.discardGhost(s)
		if canvas {
			return OutcomeDeleted, m.remove(s.Origin)
		}
		return OutcomeDeleted, nil
	}

	// A socket always takes the ghost. The origin keeps its own socket and
	// reappears in reset.
	if c.Kind == CandidateValue {
		if err := m.tree.Occupy(c.Node, s.Ghost); err != nil {
			return OutcomeCancelled, err
		}
		return OutcomeOccupied, nil
	}

	// A statement drop from the canvas moves the origin itself; a palette
	// drop places the ghost.
	moving := s.Ghost
	if canvas {
		m.discardGhost(s)
		m.tree.Unpin(s.Origin)
		m.tree.SetHidden(s.Origin, false)
		moving = s.Origin
	}

	var err error
	switch c.Kind {
	case CandidateContainsFront:
		err = m.tree.Prepend(c.Node, moving)
	case CandidateAfter:
		err = m.tree.InsertAfter(c.Node, moving)
	}
	if err != nil {
		return OutcomeCancelled, err
	}
	return OutcomeInserted, nil
}

// Cancel discards the ghost and restores the origin.
func (m *Machine) Cancel(ctx context.Context, s *Session) error {
	if err := m.check(s); err != nil {
		return err
	}
	m.discardGhost(s)
	m.reset(s)
	m.emit(ctx, m.hooks.OnDragCancel, s, OutcomeCancelled)
	return nil
}

func (m *Machine) check(s *Session) error {
	if s == nil || s != m.active {
		return domain.ErrNoActiveSession
	}
	return nil
}

// remove deletes a canvas origin and repairs the socket it leaves behind.
func (m *Machine) remove(origin domain.NodeID) error {
	m.tree.Unpin(origin)
	from := m.tree.Parent(origin)
	if err := m.tree.Delete(origin); err != nil {
		return err
	}
	m.tree.Vacate(from)
	return nil
}

func (m *Machine) discardGhost(s *Session) {
	if !m.tree.Exists(s.Ghost) {
		return
	}
	if err := m.tree.Delete(s.Ghost); err != nil {
		m.logger.Warn("failed to discard ghost", "session", s.ID, "ghost", s.Ghost, "err", err)
	}
}

func (m *Machine) reset(s *Session) {
	if s.OriginKind == OriginCanvas && m.tree.Exists(s.Origin) {
		m.tree.Unpin(s.Origin)
		m.tree.SetHidden(s.Origin, false)
	}
	m.active = nil
	m.notifier.Info("")
	m.surface.SetActive(false)
	m.logger.Debug("drag finished", "session", s.ID)
}

func (m *Machine) emit(ctx context.Context, hook func(context.Context, *domain.DragEvent), s *Session, outcome Outcome) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.DragEvent{
		Timestamp:  time.Now(),
		SessionID:  s.ID,
		Origin:     s.Origin,
		Ghost:      s.Ghost,
		OriginKind: string(s.OriginKind),
		Outcome:    string(outcome),
	})
}

package tree

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aretw0/blockyard/internal/logging"
	"github.com/aretw0/blockyard/pkg/domain"
)

type node struct {
	id       domain.NodeID
	kind     domain.Kind
	attrs    domain.Attrs
	text     string
	parent   domain.NodeID
	children []domain.NodeID
	phase    domain.Phase

	// Runtime-only, never cloned.
	hidden bool
	pins   int
}

// Tree is the arena holding every node of an editing workspace.
// It is not safe for concurrent use; all mutations happen on the event loop.
type Tree struct {
	nodes  []*node
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	ctx    context.Context
}

// Option configures a Tree.
type Option func(*Tree)

// WithHooks registers mutation and lifecycle observers.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Tree) {
		t.hooks = hooks
	}
}

// WithLogger sets the structured logger used for repair diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithContext sets the context handed to hooks.
func WithContext(ctx context.Context) Option {
	return func(t *Tree) {
		t.ctx = ctx
	}
}

// New creates an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		logger: logging.NewNop(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetHooks replaces the registered hooks.
func (t *Tree) SetHooks(hooks domain.LifecycleHooks) {
	t.hooks = hooks
}

// Hooks returns the registered hooks.
func (t *Tree) Hooks() domain.LifecycleHooks {
	return t.hooks
}

func (t *Tree) get(id domain.NodeID) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

func (t *Tree) mustGet(id domain.NodeID) (*node, error) {
	n := t.get(id)
	if n == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrNodeNotFound, id)
	}
	return n, nil
}

func (t *Tree) alloc(kind domain.Kind, attrs domain.Attrs, text string) *node {
	n := &node{
		id:     domain.NodeID(len(t.nodes)),
		kind:   kind,
		attrs:  attrs.Clone(),
		text:   text,
		parent: domain.NoNode,
		phase:  domain.PhaseUnattached,
	}
	if n.attrs == nil {
		n.attrs = domain.Attrs{}
	}
	t.nodes = append(t.nodes, n)
	return n
}

// Create constructs a node of kind, attaches the given children in order and
// runs the kind's scaffolding. Children supplied here count as author-supplied
// structure, so scaffolding only fills in what is still missing.
func (t *Tree) Create(kind domain.Kind, attrs domain.Attrs, children ...domain.NodeID) domain.NodeID {
	n := t.alloc(kind, attrs, "")
	for _, child := range children {
		if err := t.insert(n.id, child, -1); err != nil {
			t.logger.Warn("dropping child during create", "node", n.id, "child", child, "err", err)
		}
	}
	t.scaffold(n.id)
	n.phase = domain.PhaseCreated
	t.emitPhase(t.hooks.OnCreated, n)
	return n.id
}

// CreateText constructs a leaf (input, selector or label) carrying text.
func (t *Tree) CreateText(kind domain.Kind, attrs domain.Attrs, text string) domain.NodeID {
	id := t.Create(kind, attrs)
	t.nodes[id].text = text
	return id
}

// CreateDefaultChild returns the direct child of parent with the given kind,
// creating it (first when atFront, last otherwise) if absent.
func (t *Tree) CreateDefaultChild(parent domain.NodeID, kind domain.Kind, atFront bool) domain.NodeID {
	if t.get(parent) == nil {
		return domain.NoNode
	}
	if existing := t.Child(parent, AnyOf(kind)); existing != domain.NoNode {
		return existing
	}
	child := t.Create(kind, nil)
	index := -1
	if atFront {
		index = 0
	}
	if err := t.insert(parent, child, index); err != nil {
		t.logger.Warn("failed to insert default child", "parent", parent, "kind", kind, "err", err)
	}
	return child
}

// Scaffold re-runs the creation scaffolding of id. It is idempotent and is
// used to repair a node whose required substructure was moved away, such as a
// value socket whose expression was dragged out.
func (t *Tree) Scaffold(id domain.NodeID) {
	if t.get(id) == nil {
		return
	}
	t.scaffold(id)
}

// Vacate restores the literal occupant of a value socket whose expression
// was moved away. Non-socket nodes are ignored.
func (t *Tree) Vacate(value domain.NodeID) {
	if t.Kind(value) != domain.KindValue {
		return
	}
	t.scaffold(value)
}

// Append attaches child as the last child of parent.
func (t *Tree) Append(parent, child domain.NodeID) error {
	return t.insert(parent, child, -1)
}

// Prepend attaches child as the first child of parent.
func (t *Tree) Prepend(parent, child domain.NodeID) error {
	return t.insert(parent, child, 0)
}

// InsertAfter attaches child as the sibling right after ref.
func (t *Tree) InsertAfter(ref, child domain.NodeID) error {
	r, err := t.mustGet(ref)
	if err != nil {
		return err
	}
	if r.parent == domain.NoNode {
		return fmt.Errorf("insert after %d: reference has no parent", ref)
	}
	if ref == child {
		return nil
	}
	parent := t.nodes[r.parent]
	index := slices.Index(parent.children, ref) + 1
	return t.insert(parent.id, child, index)
}

// InsertBefore attaches child as the sibling right before ref.
func (t *Tree) InsertBefore(ref, child domain.NodeID) error {
	r, err := t.mustGet(ref)
	if err != nil {
		return err
	}
	if r.parent == domain.NoNode {
		return fmt.Errorf("insert before %d: reference has no parent", ref)
	}
	if ref == child {
		return nil
	}
	parent := t.nodes[r.parent]
	index := slices.Index(parent.children, ref)
	return t.insert(parent.id, child, index)
}

// Occupy makes expr the occupant of the value socket.
// A literal input is displaced; an existing expression or selector makes the
// call fail with domain.ErrSocketOccupied and leaves the tree untouched.
func (t *Tree) Occupy(value, expr domain.NodeID) error {
	v, err := t.mustGet(value)
	if err != nil {
		return err
	}
	if v.kind != domain.KindValue {
		return fmt.Errorf("%w: %d is a %s", domain.ErrNotASocket, value, v.kind)
	}
	if _, err := t.mustGet(expr); err != nil {
		return err
	}
	if t.isAncestorOrSelf(expr, value) {
		return domain.ErrCycle
	}
	if occupant := t.Child(value, AnyOf(domain.KindExpression, domain.KindSelector)); occupant != domain.NoNode {
		return fmt.Errorf("%w: value %d holds %s %d", domain.ErrSocketOccupied, value, t.nodes[occupant].kind, occupant)
	}
	for _, input := range t.ChildrenMatching(value, AnyOf(domain.KindInput)) {
		if err := t.Delete(input); err != nil {
			return err
		}
	}
	return t.insert(value, expr, -1)
}

// Detach removes id from its parent. The node and its subtree stay in the
// arena as a free-floating root. Detaching a root is a no-op.
func (t *Tree) Detach(id domain.NodeID) error {
	n, err := t.mustGet(id)
	if err != nil {
		return err
	}
	if n.parent == domain.NoNode {
		return nil
	}
	if pinned := t.pinnedIn(id); pinned != domain.NoNode {
		return fmt.Errorf("detach %d: %w (%d)", id, domain.ErrNodePinned, pinned)
	}
	oldParent, index := t.unlink(n)
	n.phase = domain.PhaseDetached
	t.emitMutation(t.hooks.OnRemove, domain.MutationRemove, n, oldParent, domain.NoNode, index)
	t.emitPhase(t.hooks.OnDetached, n)
	return nil
}

// Delete detaches id and frees its whole subtree.
func (t *Tree) Delete(id domain.NodeID) error {
	n, err := t.mustGet(id)
	if err != nil {
		return err
	}
	if pinned := t.pinnedIn(id); pinned != domain.NoNode {
		return fmt.Errorf("delete %d: %w (%d)", id, domain.ErrNodePinned, pinned)
	}
	if n.parent != domain.NoNode {
		if err := t.Detach(id); err != nil {
			return err
		}
	}
	var freed []domain.NodeID
	t.Walk(id, func(d domain.NodeID, _ int) bool {
		freed = append(freed, d)
		return true
	})
	for _, d := range freed {
		t.nodes[d] = nil
	}
	return nil
}

// SetAttr sets an attribute. An empty value removes it.
func (t *Tree) SetAttr(id domain.NodeID, key, value string) error {
	n, err := t.mustGet(id)
	if err != nil {
		return err
	}
	if value == "" {
		delete(n.attrs, key)
		return nil
	}
	n.attrs[key] = value
	return nil
}

// SetText sets the literal text of an input, selector or label.
func (t *Tree) SetText(id domain.NodeID, text string) error {
	n, err := t.mustGet(id)
	if err != nil {
		return err
	}
	n.text = text
	return nil
}

// SetHidden toggles visual presence without changing structure.
func (t *Tree) SetHidden(id domain.NodeID, hidden bool) {
	if n := t.get(id); n != nil {
		n.hidden = hidden
	}
}

// Pin marks id as referenced by an active drag session; pinned nodes cannot
// be detached or deleted, directly or through an ancestor.
func (t *Tree) Pin(id domain.NodeID) {
	if n := t.get(id); n != nil {
		n.pins++
	}
}

// Unpin releases one Pin.
func (t *Tree) Unpin(id domain.NodeID) {
	if n := t.get(id); n != nil && n.pins > 0 {
		n.pins--
	}
}

// insert is the single attachment path: it validates, unlinks from the old
// parent, links under the new one and runs the attached lifecycle rules.
func (t *Tree) insert(parentID, childID domain.NodeID, index int) error {
	parent, err := t.mustGet(parentID)
	if err != nil {
		return err
	}
	child, err := t.mustGet(childID)
	if err != nil {
		return err
	}
	if t.isAncestorOrSelf(childID, parentID) {
		return fmt.Errorf("attach %d under %d: %w", childID, parentID, domain.ErrCycle)
	}
	if err := t.checkOccupancy(parent, child); err != nil {
		return err
	}

	oldParent := child.parent
	if oldParent != domain.NoNode && oldParent != parentID {
		if pinned := t.pinnedIn(childID); pinned != domain.NoNode {
			return fmt.Errorf("move %d: %w (%d)", childID, domain.ErrNodePinned, pinned)
		}
	}
	if oldParent != domain.NoNode {
		_, oldIndex := t.unlink(child)
		// Re-inserting under the same parent: the removal shifted later slots.
		if oldParent == parentID && index > oldIndex {
			index--
		}
	}

	if index < 0 || index > len(parent.children) {
		index = len(parent.children)
	}
	parent.children = slices.Insert(parent.children, index, childID)
	child.parent = parentID
	child.phase = domain.PhaseAttached

	if oldParent == domain.NoNode {
		t.emitMutation(t.hooks.OnInsert, domain.MutationInsert, child, domain.NoNode, parentID, index)
	} else {
		t.emitMutation(t.hooks.OnRelocate, domain.MutationRelocate, child, oldParent, parentID, index)
	}
	t.emitPhase(t.hooks.OnAttached, child)

	t.attached(childID)
	return nil
}

// checkOccupancy enforces the single-occupant rule of values and locals.
func (t *Tree) checkOccupancy(parent, child *node) error {
	switch parent.kind {
	case domain.KindValue:
		if !occupants(child.kind) {
			return nil
		}
		for _, c := range parent.children {
			if c != child.id && occupants(t.nodes[c].kind) {
				return fmt.Errorf("%w: value %d", domain.ErrSocketOccupied, parent.id)
			}
		}
	case domain.KindLocal:
		if child.kind != domain.KindExpression {
			return nil
		}
		for _, c := range parent.children {
			if c != child.id && t.nodes[c].kind == domain.KindExpression {
				return fmt.Errorf("%w: local %d", domain.ErrSocketOccupied, parent.id)
			}
		}
	}
	return nil
}

func (t *Tree) unlink(n *node) (domain.NodeID, int) {
	oldParent := n.parent
	p := t.nodes[oldParent]
	index := slices.Index(p.children, n.id)
	if index >= 0 {
		p.children = slices.Delete(p.children, index, index+1)
	}
	n.parent = domain.NoNode
	return oldParent, index
}

// isAncestorOrSelf reports whether a is b or one of b's ancestors.
func (t *Tree) isAncestorOrSelf(a, b domain.NodeID) bool {
	for cur := b; cur != domain.NoNode; cur = t.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}

func (t *Tree) pinnedIn(id domain.NodeID) domain.NodeID {
	found := domain.NoNode
	t.Walk(id, func(d domain.NodeID, _ int) bool {
		if found == domain.NoNode && t.nodes[d].pins > 0 {
			found = d
		}
		return found == domain.NoNode
	})
	return found
}

// Clone copies the subtree rooted at id as a new free-floating root.
// Kind, attributes, text and structure are copied; hidden flags, pins and
// lifecycle state are not.
func (t *Tree) Clone(id domain.NodeID) (domain.NodeID, error) {
	if _, err := t.mustGet(id); err != nil {
		return domain.NoNode, err
	}
	root := t.cloneRec(id, domain.NoNode)
	var created []domain.NodeID
	t.Walk(root, func(d domain.NodeID, _ int) bool {
		created = append(created, d)
		return true
	})
	for _, d := range created {
		n := t.nodes[d]
		t.scaffold(d)
		n.phase = domain.PhaseCreated
		if n.parent != domain.NoNode {
			n.phase = domain.PhaseAttached
		}
		t.emitPhase(t.hooks.OnCreated, n)
	}
	return root, nil
}

func (t *Tree) cloneRec(id, parent domain.NodeID) domain.NodeID {
	src := t.nodes[id]
	dst := t.alloc(src.kind, src.attrs, src.text)
	dst.parent = parent
	for _, c := range src.children {
		dst.children = append(dst.children, t.cloneRec(c, dst.id))
	}
	return dst.id
}

package tree

import (
	"slices"

	"github.com/aretw0/blockyard/pkg/domain"
)

// Matcher is a structural predicate over node kinds. Queries take matchers
// rather than kind names so that related kinds can share one pattern.
type Matcher func(domain.Kind) bool

// AnyOf matches any of the given kinds.
func AnyOf(kinds ...domain.Kind) Matcher {
	return func(k domain.Kind) bool {
		return slices.Contains(kinds, k)
	}
}

// Shared patterns.
var (
	Blocks      = AnyOf(domain.KindStep, domain.KindContext, domain.KindExpression)
	Statements  = AnyOf(domain.KindStep, domain.KindContext)
	HeaderItems = AnyOf(domain.KindRow, domain.KindDisclosure, domain.KindValue, domain.KindLocal)
	Arguments   = AnyOf(domain.KindValue, domain.KindRow)
	Literals    = AnyOf(domain.KindInput, domain.KindSelector)
	occupants   = AnyOf(domain.KindInput, domain.KindSelector, domain.KindExpression)
)

// Exists reports whether id is a live node.
func (t *Tree) Exists(id domain.NodeID) bool {
	return t.get(id) != nil
}

// Kind returns the kind of id, or "" when it does not exist.
func (t *Tree) Kind(id domain.NodeID) domain.Kind {
	if n := t.get(id); n != nil {
		return n.kind
	}
	return ""
}

// Is reports whether id exists and matches m.
func (t *Tree) Is(id domain.NodeID, m Matcher) bool {
	n := t.get(id)
	return n != nil && m(n.kind)
}

// Attr returns one attribute of id.
func (t *Tree) Attr(id domain.NodeID, key string) string {
	if n := t.get(id); n != nil {
		return n.attrs[key]
	}
	return ""
}

// Attrs returns a copy of the attributes of id.
func (t *Tree) Attrs(id domain.NodeID) domain.Attrs {
	if n := t.get(id); n != nil {
		return n.attrs.Clone()
	}
	return nil
}

// Text returns the literal text of id.
func (t *Tree) Text(id domain.NodeID) string {
	if n := t.get(id); n != nil {
		return n.text
	}
	return ""
}

// Parent returns the parent of id, or domain.NoNode.
func (t *Tree) Parent(id domain.NodeID) domain.NodeID {
	if n := t.get(id); n != nil {
		return n.parent
	}
	return domain.NoNode
}

// Children returns a copy of the ordered children of id.
func (t *Tree) Children(id domain.NodeID) []domain.NodeID {
	if n := t.get(id); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// Index returns the position of id among its siblings, or -1 for roots.
func (t *Tree) Index(id domain.NodeID) int {
	n := t.get(id)
	if n == nil || n.parent == domain.NoNode {
		return -1
	}
	return slices.Index(t.nodes[n.parent].children, id)
}

// Hidden reports whether id is visually hidden.
func (t *Tree) Hidden(id domain.NodeID) bool {
	n := t.get(id)
	return n != nil && n.hidden
}

// Pinned reports whether id is pinned by a drag session.
func (t *Tree) Pinned(id domain.NodeID) bool {
	n := t.get(id)
	return n != nil && n.pins > 0
}

// Phase returns the lifecycle phase of id.
func (t *Tree) Phase(id domain.NodeID) domain.Phase {
	if n := t.get(id); n != nil {
		return n.phase
	}
	return ""
}

// Len returns the number of live nodes.
func (t *Tree) Len() int {
	count := 0
	for _, n := range t.nodes {
		if n != nil {
			count++
		}
	}
	return count
}

// Roots returns every live node without a parent, in creation order.
func (t *Tree) Roots() []domain.NodeID {
	var roots []domain.NodeID
	for _, n := range t.nodes {
		if n != nil && n.parent == domain.NoNode {
			roots = append(roots, n.id)
		}
	}
	return roots
}

// Closest returns id itself or its nearest ancestor matching m.
func (t *Tree) Closest(id domain.NodeID, m Matcher) domain.NodeID {
	for cur := id; cur != domain.NoNode; {
		n := t.get(cur)
		if n == nil {
			return domain.NoNode
		}
		if m(n.kind) {
			return cur
		}
		cur = n.parent
	}
	return domain.NoNode
}

// Ancestor returns the nearest strict ancestor of id matching m.
func (t *Tree) Ancestor(id domain.NodeID, m Matcher) domain.NodeID {
	n := t.get(id)
	if n == nil {
		return domain.NoNode
	}
	return t.Closest(n.parent, m)
}

// Within reports whether id has an ancestor matching m.
func (t *Tree) Within(id domain.NodeID, m Matcher) bool {
	return t.Ancestor(id, m) != domain.NoNode
}

// Child returns the first direct child of id matching m.
func (t *Tree) Child(id domain.NodeID, m Matcher) domain.NodeID {
	n := t.get(id)
	if n == nil {
		return domain.NoNode
	}
	for _, c := range n.children {
		if m(t.nodes[c].kind) {
			return c
		}
	}
	return domain.NoNode
}

// ChildrenMatching returns the direct children of id matching m, in order.
func (t *Tree) ChildrenMatching(id domain.NodeID, m Matcher) []domain.NodeID {
	n := t.get(id)
	if n == nil {
		return nil
	}
	var out []domain.NodeID
	for _, c := range n.children {
		if m(t.nodes[c].kind) {
			out = append(out, c)
		}
	}
	return out
}

// Header returns the header region of a block, or domain.NoNode.
func (t *Tree) Header(block domain.NodeID) domain.NodeID {
	return t.Child(block, AnyOf(domain.KindHeader))
}

// Walk visits id and its descendants depth-first in document order.
// Returning false from fn skips the node's subtree.
func (t *Tree) Walk(id domain.NodeID, fn func(id domain.NodeID, depth int) bool) {
	t.walk(id, 0, fn)
}

func (t *Tree) walk(id domain.NodeID, depth int, fn func(domain.NodeID, int) bool) {
	n := t.get(id)
	if n == nil || !fn(id, depth) {
		return
	}
	for _, c := range slices.Clone(n.children) {
		t.walk(c, depth+1, fn)
	}
}

// Snapshot is a value copy of a subtree, used to compare structure.
type Snapshot struct {
	Kind     domain.Kind  `json:"kind"`
	Attrs    domain.Attrs `json:"attrs,omitempty"`
	Text     string       `json:"text,omitempty"`
	Hidden   bool         `json:"hidden,omitempty"`
	Children []Snapshot   `json:"children,omitempty"`
}

// Snapshot copies the subtree rooted at id.
func (t *Tree) Snapshot(id domain.NodeID) Snapshot {
	n := t.get(id)
	if n == nil {
		return Snapshot{}
	}
	s := Snapshot{
		Kind:   n.kind,
		Text:   n.text,
		Hidden: n.hidden,
	}
	if len(n.attrs) > 0 {
		s.Attrs = n.attrs.Clone()
	}
	for _, c := range n.children {
		s.Children = append(s.Children, t.Snapshot(c))
	}
	return s
}

// Find returns the first node in creation order whose name attribute is name.
func (t *Tree) Find(name string) domain.NodeID {
	for _, n := range t.nodes {
		if n != nil && n.attrs[domain.AttrName] == name {
			return n.id
		}
	}
	return domain.NoNode
}

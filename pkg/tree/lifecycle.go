package tree

import (
	"strings"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/types"
)

// behavior is the kind-specific part of the lifecycle.
type behavior interface {
	// scaffold adds the required substructure that is still missing.
	scaffold(t *Tree, id domain.NodeID)
	// attached runs after id gained a parent.
	attached(t *Tree, id domain.NodeID)
}

var behaviors = map[domain.Kind]behavior{
	domain.KindStep:       statementBehavior{},
	domain.KindContext:    contextBehavior{},
	domain.KindExpression: expressionBehavior{},
	domain.KindValue:      valueBehavior{},
	domain.KindRow:        headerItemBehavior{},
	domain.KindDisclosure: headerItemBehavior{},
	domain.KindLocal:      headerItemBehavior{},
}

func behaviorOf(kind domain.Kind) behavior {
	if b, ok := behaviors[kind]; ok {
		return b
	}
	return inertBehavior{}
}

func (t *Tree) scaffold(id domain.NodeID) {
	behaviorOf(t.nodes[id].kind).scaffold(t, id)
}

func (t *Tree) attached(id domain.NodeID) {
	behaviorOf(t.nodes[id].kind).attached(t, id)
}

// ensureHeader returns the header of block, creating it in the kind's
// position: last for steps, first for everything else.
func (t *Tree) ensureHeader(block domain.NodeID) domain.NodeID {
	return t.CreateDefaultChild(block, domain.KindHeader, t.nodes[block].kind != domain.KindStep)
}

// relocate moves id to the end of parent as a lifecycle repair.
func (t *Tree) relocate(id, parent domain.NodeID, reason string) {
	t.logger.Debug("relocating node",
		"node", id,
		"kind", t.nodes[id].kind,
		"from", t.nodes[id].parent,
		"to", parent,
		"reason", reason,
	)
	if err := t.insert(parent, id, -1); err != nil {
		t.logger.Warn("relocation failed", "node", id, "to", parent, "err", err)
	}
}

type inertBehavior struct{}

func (inertBehavior) scaffold(*Tree, domain.NodeID) {}
func (inertBehavior) attached(*Tree, domain.NodeID) {}

// statementBehavior covers steps: a header, and placement inside the nearest
// context's contains region.
type statementBehavior struct{}

func (statementBehavior) scaffold(t *Tree, id domain.NodeID) {
	t.ensureHeader(id)
}

func (statementBehavior) attached(t *Tree, id domain.NodeID) {
	parent := t.nodes[id].parent
	if t.nodes[parent].kind == domain.KindContains {
		return
	}
	context := t.Closest(parent, AnyOf(domain.KindContext))
	if context == domain.NoNode {
		// Free-floating: a palette or otherwise unplaced block.
		return
	}
	contains := t.CreateDefaultChild(context, domain.KindContains, false)
	t.relocate(id, contains, "statement outside contains")
}

type contextBehavior struct {
	statementBehavior
}

func (contextBehavior) scaffold(t *Tree, id domain.NodeID) {
	header := t.ensureHeader(id)
	if t.Child(id, AnyOf(domain.KindDisclosure)) == domain.NoNode {
		t.CreateDefaultChild(header, domain.KindDisclosure, false)
	}
	t.CreateDefaultChild(id, domain.KindLocals, false)
	t.CreateDefaultChild(id, domain.KindContains, false)
}

// expressionBehavior: expressions are in place wherever they are attached.
type expressionBehavior struct{}

func (expressionBehavior) scaffold(t *Tree, id domain.NodeID) {
	header := t.ensureHeader(id)
	if t.nodes[id].attrs[domain.AttrContext] == "true" && t.Child(id, AnyOf(domain.KindDisclosure)) == domain.NoNode {
		t.CreateDefaultChild(header, domain.KindDisclosure, false)
	}
}

func (expressionBehavior) attached(*Tree, domain.NodeID) {}

// headerItemBehavior keeps rows, disclosures, values and locals in a header.
type headerItemBehavior struct{}

func (headerItemBehavior) scaffold(*Tree, domain.NodeID) {}

func (headerItemBehavior) attached(t *Tree, id domain.NodeID) {
	n := t.nodes[id]
	switch t.nodes[n.parent].kind {
	case domain.KindHeader, domain.KindRow:
		return
	case domain.KindLocals:
		if n.kind == domain.KindLocal {
			return
		}
	}
	block := t.Closest(n.parent, Blocks)
	if block == domain.NoNode {
		return
	}
	t.relocate(id, t.ensureHeader(block), "header item outside header")
}

// valueBehavior scaffolds the literal occupant of a socket from its first
// declared type, unless the socket is already occupied.
type valueBehavior struct {
	headerItemBehavior
}

func (valueBehavior) scaffold(t *Tree, id domain.NodeID) {
	if t.Child(id, occupants) != domain.NoNode {
		return
	}
	attrs := t.nodes[id].attrs
	literal := attrs[domain.AttrLiteralValue]

	var occupant domain.NodeID
	switch primary := types.ParseSet(attrs[domain.AttrValueType]).Primary(); primary {
	case types.Number, types.Text, types.Color, types.Any:
		occupant = t.CreateText(domain.KindInput, inputAttrs(primary, attrs), literal)
	case types.List:
		options := splitOptions(attrs[domain.AttrOptions])
		occupant = t.CreateText(domain.KindSelector,
			domain.Attrs{domain.AttrOptions: strings.Join(options, ",")},
			choose(options, literal))
	case types.Boolean:
		options := []string{"true", "false"}
		occupant = t.CreateText(domain.KindSelector,
			domain.Attrs{domain.AttrOptions: strings.Join(options, ",")},
			choose(options, literal))
	case "":
		return
	default:
		// Block-typed socket: only drops fill it.
		a := inputAttrs(primary, nil)
		a[domain.AttrReadOnly] = "true"
		occupant = t.CreateText(domain.KindInput, a, "")
	}
	if err := t.insert(id, occupant, -1); err != nil {
		t.logger.Warn("failed to scaffold value", "node", id, "err", err)
	}
}

func inputAttrs(primary types.Type, valueAttrs domain.Attrs) domain.Attrs {
	a := domain.Attrs{domain.AttrValueType: string(primary)}
	for _, key := range []string{domain.AttrMin, domain.AttrMax} {
		if v, ok := valueAttrs[key]; ok {
			a[key] = v
		}
	}
	return a
}

func splitOptions(s string) []string {
	var out []string
	for _, opt := range strings.Split(s, ",") {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}

// choose returns want when it is one of the options, else the first option.
func choose(options []string, want string) string {
	for _, opt := range options {
		if opt == want {
			return want
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0]
}

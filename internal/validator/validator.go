// Package validator checks that a block tree is well-formed: the structure
// the lifecycle rules are meant to maintain after every edit.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/aretw0/blockyard/pkg/types"
)

// Issue is one structural violation.
type Issue struct {
	Node    domain.NodeID
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("node %d: %s", i.Node, i.Message)
}

// Error aggregates the issues found in one validation run.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Issues), strings.Join(lines, "\n- "))
}

var (
	regions   = tree.AnyOf(domain.KindHeader, domain.KindLocals, domain.KindContains)
	occupants = tree.AnyOf(domain.KindInput, domain.KindSelector, domain.KindExpression)
)

// ValidateTree crawls every root and reports structural violations, or nil.
// Hidden or pinned nodes count as violations: outside a drag session nothing
// should be either.
func ValidateTree(t *tree.Tree, roots ...domain.NodeID) error {
	v := &validator{tree: t}
	for _, root := range roots {
		if !t.Exists(root) {
			v.report(root, "root does not exist")
			continue
		}
		t.Walk(root, func(id domain.NodeID, _ int) bool {
			v.check(id)
			return true
		})
	}
	if len(v.issues) > 0 {
		return &Error{Issues: v.issues}
	}
	return nil
}

type validator struct {
	tree   *tree.Tree
	issues []Issue
}

func (v *validator) report(id domain.NodeID, format string, args ...any) {
	v.issues = append(v.issues, Issue{Node: id, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) check(id domain.NodeID) {
	t := v.tree
	if t.Hidden(id) {
		v.report(id, "hidden outside a drag session")
	}
	if t.Pinned(id) {
		v.report(id, "pinned outside a drag session")
	}

	switch kind := t.Kind(id); kind {
	case domain.KindStep, domain.KindContext, domain.KindExpression:
		v.checkBlock(id, kind)
	case domain.KindValue:
		v.checkValue(id)
	case domain.KindRow, domain.KindDisclosure:
		v.checkHeaderItem(id, domain.KindHeader, domain.KindRow)
	case domain.KindLocal:
		v.checkHeaderItem(id, domain.KindHeader, domain.KindRow, domain.KindLocals)
	}
}

func (v *validator) checkBlock(id domain.NodeID, kind domain.Kind) {
	t := v.tree
	counts := map[domain.Kind]int{}
	for _, c := range t.ChildrenMatching(id, regions) {
		counts[t.Kind(c)]++
	}
	for region, n := range counts {
		if n > 1 {
			v.report(id, "%d %s regions", n, region)
		}
	}
	if counts[domain.KindHeader] == 0 {
		v.report(id, "%s without header", kind)
	}

	children := t.Children(id)
	if header := t.Header(id); header != domain.NoNode && len(children) > 1 {
		want := children[0]
		if kind == domain.KindStep {
			want = children[len(children)-1]
		}
		if header != want {
			v.report(id, "header of a %s out of place", kind)
		}
	}

	if kind == domain.KindContext {
		for _, region := range []domain.Kind{domain.KindLocals, domain.KindContains} {
			if counts[region] == 0 {
				v.report(id, "context without %s", region)
			}
		}
		if t.Child(t.Header(id), tree.AnyOf(domain.KindDisclosure)) == domain.NoNode {
			v.report(id, "context without disclosure")
		}
	}

	if kind != domain.KindExpression && t.Within(id, tree.AnyOf(domain.KindContains)) {
		if parent := t.Parent(id); t.Kind(parent) != domain.KindContains {
			v.report(id, "statement inside a script but outside contains (parent %s %d)", t.Kind(parent), parent)
		}
	}
}

func (v *validator) checkValue(id domain.NodeID) {
	t := v.tree
	v.checkHeaderItem(id, domain.KindHeader, domain.KindRow)

	held := t.ChildrenMatching(id, occupants)
	switch {
	case len(held) > 1:
		v.report(id, "value holds %d occupants", len(held))
	case len(held) == 0 && t.Attr(id, domain.AttrValueType) != "":
		v.report(id, "value without occupant")
	case len(held) == 1 && t.Kind(held[0]) == domain.KindExpression:
		socket := t.Attr(id, domain.AttrValueType)
		if err := types.Check(socket, t.Attr(held[0], domain.AttrValueType)); err != nil {
			v.report(id, "%v", err)
		}
	}
}

func (v *validator) checkHeaderItem(id domain.NodeID, allowed ...domain.Kind) {
	t := v.tree
	parent := t.Parent(id)
	if parent == domain.NoNode {
		return
	}
	if !t.Is(parent, tree.AnyOf(allowed...)) {
		v.report(id, "%s placed in %s %d", t.Kind(id), t.Kind(parent), parent)
	}
}

package drag

import (
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/ports"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/aretw0/blockyard/pkg/types"
)

var (
	valueSockets  = tree.AnyOf(domain.KindValue)
	statementDrop = tree.AnyOf(domain.KindStep, domain.KindContext, domain.KindContains)
)

// candidate maps a hit to a drop target and the message describing it.
// It only reads the tree.
func (m *Machine) candidate(s *Session, hit ports.Hit) (Candidate, string) {
	if hit.DeletionSurface {
		return Candidate{Kind: CandidateDelete, Node: domain.NoNode}, msgDelete
	}
	if !m.eligible(s, hit.Node) {
		return noCandidate, msgNotATarget
	}
	if m.tree.Kind(s.Ghost) == domain.KindExpression {
		return m.valueCandidate(s, hit.Node)
	}
	return m.statementCandidate(hit.Node)
}

func (m *Machine) valueCandidate(s *Session, node domain.NodeID) (Candidate, string) {
	value := m.tree.Closest(node, valueSockets)
	if value == domain.NoNode {
		return noCandidate, msgValuesOnly
	}
	if m.tree.Child(value, tree.AnyOf(domain.KindExpression)) != domain.NoNode {
		return noCandidate, msgOnExpression
	}
	if m.tree.Child(value, tree.AnyOf(domain.KindSelector)) != domain.NoNode {
		return noCandidate, msgOnSelector
	}
	socket := m.tree.Attr(value, domain.AttrValueType)
	if err := types.Check(socket, m.tree.Attr(s.Ghost, domain.AttrValueType)); err != nil {
		return noCandidate, err.Error()
	}
	return Candidate{Kind: CandidateValue, Node: value}, msgAccepted
}

// statementCandidate climbs to the nearest contains region, or to a statement
// placed directly in one.
func (m *Machine) statementCandidate(node domain.NodeID) (Candidate, string) {
	for c := m.tree.Closest(node, statementDrop); c != domain.NoNode; c = m.tree.Ancestor(c, statementDrop) {
		if m.tree.Kind(c) == domain.KindContains {
			return Candidate{Kind: CandidateContainsFront, Node: c}, msgContainsFront
		}
		if m.tree.Kind(m.tree.Parent(c)) == domain.KindContains {
			return Candidate{Kind: CandidateAfter, Node: c}, msgAfter
		}
	}
	return noCandidate, msgNotATarget
}

// eligible rejects missing nodes and anything inside the ghost or a hidden
// subtree (the origin of a canvas drag).
func (m *Machine) eligible(s *Session, node domain.NodeID) bool {
	if !m.tree.Exists(node) {
		return false
	}
	for id := node; id != domain.NoNode; id = m.tree.Parent(id) {
		if id == s.Ghost || m.tree.Hidden(id) {
			return false
		}
	}
	return true
}

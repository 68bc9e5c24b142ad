package drag

import "github.com/aretw0/blockyard/pkg/domain"

// OriginKind tells where a drag started.
type OriginKind string

const (
	// OriginPalette drags copy: the origin stays where it is.
	OriginPalette OriginKind = "palette"
	// OriginCanvas drags move: the origin leaves its script on drop.
	OriginCanvas OriginKind = "canvas"
)

// CandidateKind classifies a potential drop target.
type CandidateKind int

const (
	CandidateNone CandidateKind = iota
	CandidateDelete
	CandidateValue
	CandidateContainsFront
	CandidateAfter
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateDelete:
		return "delete"
	case CandidateValue:
		return "value"
	case CandidateContainsFront:
		return "contains-front"
	case CandidateAfter:
		return "after"
	default:
		return "none"
	}
}

// Candidate is the drop target currently under the pointer.
type Candidate struct {
	Kind CandidateKind
	// Node is the value socket, contains region or statement to drop on.
	// It is domain.NoNode for CandidateNone and CandidateDelete.
	Node domain.NodeID
}

var noCandidate = Candidate{Kind: CandidateNone, Node: domain.NoNode}

// Outcome reports what a finished drag did to the tree.
type Outcome string

const (
	OutcomeCancelled Outcome = "cancelled"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeOccupied  Outcome = "occupied"
	OutcomeInserted  Outcome = "inserted"
)

// Session is one drag, from Start to Drop or Cancel.
type Session struct {
	ID         string
	Origin     domain.NodeID
	Ghost      domain.NodeID
	OriginKind OriginKind
	// Position is the ghost's top-left corner.
	Position  domain.Point
	Candidate Candidate
	// Message is the last advisory text sent to the notifier.
	Message string
}

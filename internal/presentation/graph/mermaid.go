package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Overlay marks nodes of interest, such as a drag origin and its candidate.
type Overlay struct {
	Highlighted []domain.NodeID
	Current     domain.NodeID
}

var shown = tree.AnyOf(
	domain.KindStep, domain.KindContext, domain.KindExpression,
	domain.KindValue, domain.KindRow, domain.KindLocal,
	domain.KindInput, domain.KindSelector,
)

// GenerateMermaid produces a Mermaid flowchart of the trees under roots.
// Structural regions (header, contains, locals) are folded into their block.
// Shapes:
// - Step: [Rectangle]
// - Context: [[Subroutine]]
// - Expression: ([Stadium])
// - Value and Row: [/Parallelogram/]
// - Literal input or selector: >Flag]
// Statements in a contains region link with solid arrows, everything else
// with dotted ones. Hidden nodes are drawn with the "hidden" class.
func GenerateMermaid(t *tree.Tree, roots []domain.NodeID, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	var hidden []domain.NodeID
	for _, root := range roots {
		t.Walk(root, func(id domain.NodeID, _ int) bool {
			if !t.Is(id, shown) {
				return true
			}
			opener, closer := shape(t.Kind(id))
			label := strings.ReplaceAll(layout.Label(t, id), "\"", "'")
			sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(id), opener, label, closer))

			if parent := t.Ancestor(id, shown); parent != domain.NoNode && id != root {
				arrow := "-.->"
				if t.Kind(t.Parent(id)) == domain.KindContains {
					arrow = "-->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(parent), arrow, nodeID(id)))
			}
			if t.Hidden(id) {
				hidden = append(hidden, id)
			}
			return true
		})
	}

	if len(hidden) > 0 {
		sb.WriteString("    classDef hidden stroke-dasharray:5 5,opacity:0.5;\n")
		for _, id := range hidden {
			sb.WriteString(fmt.Sprintf("    class %s hidden;\n", nodeID(id)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlighted fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[domain.NodeID]bool)
		for _, id := range overlay.Highlighted {
			if !seen[id] && t.Exists(id) {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s highlighted;\n", nodeID(id)))
			}
		}
		if overlay.Current != domain.NoNode && t.Exists(overlay.Current) {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Current)))
		}
	}

	return sb.String()
}

func shape(kind domain.Kind) (string, string) {
	switch kind {
	case domain.KindContext:
		return "[[", "]]"
	case domain.KindExpression:
		return "([", "])"
	case domain.KindValue, domain.KindRow:
		return "[/", "/]"
	case domain.KindInput, domain.KindSelector:
		return ">", "]"
	default:
		return "[", "]"
	}
}

func nodeID(id domain.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

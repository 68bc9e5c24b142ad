package cli

import (
	"os"

	"github.com/aretw0/blockyard/internal/presentation/graph"
	"github.com/aretw0/blockyard/internal/presentation/tui"
	"github.com/aretw0/blockyard/pkg/domain"
	"golang.org/x/term"
)

// Outline returns the workspace outline as Markdown.
func (w *Workspace) Outline() string {
	return tui.Outline("Workspace", w.Layout.Boxes())
}

// dragOverlay highlights the origin of the active drag and its candidate.
func (w *Workspace) dragOverlay() *graph.Overlay {
	s := w.Editor.Drag().Active()
	if s == nil {
		return nil
	}
	return &graph.Overlay{Highlighted: []domain.NodeID{s.Origin}, Current: s.Candidate.Node}
}

// Graph returns the workspace as a Mermaid flowchart.
func (w *Workspace) Graph(overlay *graph.Overlay) string {
	return graph.GenerateMermaid(w.Editor.Tree(), w.Roots(), overlay)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderMarkdown styles markdown with glamour when stdout is a terminal and
// returns it unchanged otherwise.
func RenderMarkdown(markdown string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return markdown, nil
	}
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	render, err := tui.NewRenderer(width)
	if err != nil {
		return "", err
	}
	return render(markdown)
}

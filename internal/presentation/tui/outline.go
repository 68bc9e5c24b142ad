package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/blockyard/internal/presentation/layout"
)

// Outline renders the laid-out workspace as a Markdown document: one nested
// list item per node, annotated with the pointer position of its line.
func Outline(title string, boxes []layout.Box) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)

	section := ""
	for _, b := range boxes {
		want := "Scripts"
		if b.Palette {
			want = "Palette"
		}
		if want != section {
			section = want
			fmt.Fprintf(&sb, "\n## %s\n\n", section)
		}
		c := b.Rect.Center()
		fmt.Fprintf(&sb, "%s- `%s` @ (%g, %g)\n", strings.Repeat("  ", b.Depth), b.Label, c.X, c.Y)
	}
	return sb.String()
}

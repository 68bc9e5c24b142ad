// Package layout projects a block tree onto an outline with one node per
// line and maps pointer positions back to nodes.
//
// The palette column lies left of x=0 and doubles as the deletion surface;
// scripts are laid out from x=0 to the right.
package layout

import (
	"fmt"
	"strconv"

	"github.com/aretw0/blockyard/internal/config"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/ports"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Rect is an axis-aligned box in page coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the middle of r.
func (r Rect) Center() domain.Point {
	return domain.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Box is the rendered line of one node.
type Box struct {
	Node    domain.NodeID `json:"node"`
	Depth   int           `json:"depth"`
	Label   string        `json:"label"`
	Rect    Rect          `json:"rect"`
	Palette bool          `json:"palette,omitempty"`
}

// Layout lays out the palette and canvas roots of a tree.
// It is recomputed on every query, so it always reflects the current tree.
type Layout struct {
	tree    *tree.Tree
	metrics config.Layout
	palette []domain.NodeID
	canvas  []domain.NodeID
	active  bool
}

// New creates a layout with the given metrics.
func New(t *tree.Tree, metrics config.Layout) *Layout {
	return &Layout{tree: t, metrics: metrics}
}

// AddPalette registers palette roots.
func (l *Layout) AddPalette(ids ...domain.NodeID) {
	l.palette = append(l.palette, ids...)
}

// AddCanvas registers script roots.
func (l *Layout) AddCanvas(ids ...domain.NodeID) {
	l.canvas = append(l.canvas, ids...)
}

// Boxes returns the palette lines followed by the canvas lines.
func (l *Layout) Boxes() []Box {
	boxes := l.column(l.palette, -l.metrics.PaletteWidth, true)
	return append(boxes, l.column(l.canvas, 0, false)...)
}

func (l *Layout) column(roots []domain.NodeID, left float64, palette bool) []Box {
	var boxes []Box
	line := 0
	for _, root := range roots {
		l.tree.Walk(root, func(id domain.NodeID, depth int) bool {
			if l.tree.Hidden(id) {
				return false
			}
			label := Label(l.tree, id)
			boxes = append(boxes, Box{
				Node:  id,
				Depth: depth,
				Label: label,
				Rect: Rect{
					X: left + float64(depth)*l.metrics.Indent,
					Y: float64(line) * l.metrics.LineHeight,
					W: float64(len(label)) * l.metrics.CharWidth,
					H: l.metrics.LineHeight,
				},
				Palette: palette,
			})
			line++
			return true
		})
	}
	return boxes
}

// Locate returns the box of id.
func (l *Layout) Locate(id domain.NodeID) (Box, bool) {
	for _, b := range l.Boxes() {
		if b.Node == id {
			return b, true
		}
	}
	return Box{}, false
}

// HitTest implements ports.HitTester. A point on a line but left of its
// indentation hits the enclosing node whose line starts there.
func (l *Layout) HitTest(p domain.Point) ports.Hit {
	if p.X < 0 {
		return ports.Hit{Node: domain.NoNode, DeletionSurface: true}
	}
	for _, b := range l.column(l.canvas, 0, false) {
		if p.Y < b.Rect.Y || p.Y >= b.Rect.Y+b.Rect.H {
			continue
		}
		id := b.Node
		for depth := b.Depth; depth > 0 && p.X < float64(depth)*l.metrics.Indent; depth-- {
			id = l.tree.Parent(id)
		}
		return ports.Hit{Node: id}
	}
	return ports.Hit{Node: domain.NoNode}
}

// SetActive implements ports.DeletionSurface.
func (l *Layout) SetActive(active bool) {
	l.active = active
}

// DeletionActive reports whether a drag is highlighting the palette.
func (l *Layout) DeletionActive() bool {
	return l.active
}

// Label is the one-line caption of a node.
func Label(t *tree.Tree, id domain.NodeID) string {
	kind := t.Kind(id)
	var s string
	switch kind {
	case domain.KindStep, domain.KindContext:
		s = fmt.Sprintf("%s %s", kind, t.Attr(id, domain.AttrScriptRef))
	case domain.KindExpression:
		s = fmt.Sprintf("%s %s: %s", kind, t.Attr(id, domain.AttrScriptRef), t.Attr(id, domain.AttrValueType))
	case domain.KindValue:
		s = fmt.Sprintf("value<%s>", t.Attr(id, domain.AttrValueType))
	case domain.KindInput, domain.KindSelector, domain.KindLabel, domain.KindUnit:
		s = fmt.Sprintf("%s %s", kind, strconv.Quote(t.Text(id)))
	case domain.KindDisclosure:
		s = string(kind)
		if t.Attr(id, domain.AttrClosed) == "true" {
			s += " (closed)"
		}
	default:
		s = string(kind)
	}
	if name := t.Attr(id, domain.AttrName); name != "" {
		s += " #" + name
	}
	return s
}

package layout_test

import (
	"testing"

	"github.com/aretw0/blockyard/internal/config"
	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/dsl"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metrics() config.Layout {
	return config.Layout{LineHeight: 10, Indent: 10, CharWidth: 1, PaletteWidth: 100}
}

func fixture(t *testing.T) (*tree.Tree, *layout.Layout, domain.NodeID, domain.NodeID) {
	t.Helper()
	b := dsl.New(tree.New())
	script := b.Context("control.script").Name("main").Do(
		b.Step("control.log").Name("say").Value("text", "hi"),
	)
	palette := b.Step("control.wait").Name("wait")
	tr, err := b.Build()
	require.NoError(t, err)

	l := layout.New(tr, metrics())
	l.AddPalette(palette.ID())
	l.AddCanvas(script.ID())
	return tr, l, script.ID(), palette.ID()
}

func TestBoxes(t *testing.T) {
	tr, l, script, palette := fixture(t)

	boxes := l.Boxes()
	require.NotEmpty(t, boxes)
	assert.Equal(t, palette, boxes[0].Node)
	assert.True(t, boxes[0].Palette)
	assert.Equal(t, -100.0, boxes[0].Rect.X)

	main, ok := l.Locate(script)
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 0, Y: 0, W: float64(len("context control.script #main")), H: 10}, main.Rect)

	say, ok := l.Locate(tr.Find("say"))
	require.True(t, ok)
	assert.Equal(t, 2, say.Depth)
	assert.Equal(t, 20.0, say.Rect.X)

	tr.SetHidden(tr.Find("say"), true)
	_, ok = l.Locate(tr.Find("say"))
	assert.False(t, ok, "hidden subtrees are not laid out")
}

func TestHitTest(t *testing.T) {
	tr, l, _, _ := fixture(t)
	say, ok := l.Locate(tr.Find("say"))
	require.True(t, ok)

	hit := l.HitTest(say.Rect.Center())
	assert.Equal(t, tr.Find("say"), hit.Node)
	assert.False(t, hit.DeletionSurface)

	hit = l.HitTest(domain.Point{X: 15, Y: say.Rect.Y + 1})
	assert.Equal(t, tr.Parent(tr.Find("say")), hit.Node, "left of the indentation hits the parent")

	hit = l.HitTest(domain.Point{X: -5, Y: 0})
	assert.True(t, hit.DeletionSurface)

	hit = l.HitTest(domain.Point{X: 5, Y: 10000})
	assert.Equal(t, domain.NoNode, hit.Node)
}

func TestLabel(t *testing.T) {
	tr := tree.New()
	expr := tr.Create(domain.KindExpression, domain.Attrs{domain.AttrScriptRef: "math.add", domain.AttrValueType: "number"})
	input := tr.CreateText(domain.KindInput, nil, "42")

	assert.Equal(t, "expression math.add: number", layout.Label(tr, expr))
	assert.Equal(t, `input "42"`, layout.Label(tr, input))
}

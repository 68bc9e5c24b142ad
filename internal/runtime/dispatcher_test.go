package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/blockyard/internal/config"
	"github.com/aretw0/blockyard/internal/presentation/layout"
	"github.com/aretw0/blockyard/internal/runtime"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/drag"
	"github.com/aretw0/blockyard/pkg/dsl"
	"github.com/aretw0/blockyard/pkg/rows"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	tr     *tree.Tree
	layout *layout.Layout
	d      *runtime.Dispatcher
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	b := dsl.New(tree.New())
	script := b.Context("control.script").Name("main").Do(
		b.Step("control.log").Name("first").Value("text", "a"),
		b.Step("control.log").Name("second").Value("text", "b"),
		b.Step("object.create").Name("obj").Row(func(r *dsl.RowBuilder) {
			r.Value("text", "key").Value("any", "")
		}),
	)
	palette := b.Step("control.wait").Name("wait")
	tr, err := b.Build()
	require.NoError(t, err)

	l := layout.New(tr, config.Default().Layout)
	l.AddPalette(palette.ID())
	l.AddCanvas(script.ID())

	m := drag.New(tr, drag.WithHitTester(l), drag.WithDeletionSurface(l))
	return &workspace{tr: tr, layout: l, d: runtime.NewDispatcher(m, rows.New(tr))}
}

func (w *workspace) over(t *testing.T, name string) domain.Dragging {
	t.Helper()
	box, ok := w.layout.Locate(w.tr.Find(name))
	require.True(t, ok, name)
	p := box.Rect.Center()
	return domain.Dragging{X: p.X, Y: p.Y}
}

func TestDispatcher_PaletteDragIntoScript(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()

	res, err := w.d.Handle(ctx, domain.DragStart{Target: w.tr.Find("wait")})
	require.NoError(t, err)
	require.NotNil(t, res.Session)
	assert.True(t, w.layout.DeletionActive())

	res, err = w.d.Handle(ctx, w.over(t, "first"))
	require.NoError(t, err)
	assert.Equal(t, drag.CandidateAfter, res.Candidate.Kind)

	res, err = w.d.Handle(ctx, domain.Drop{})
	require.NoError(t, err)
	assert.Equal(t, drag.OutcomeInserted, res.Outcome)
	assert.False(t, w.layout.DeletionActive())

	contains := w.tr.Parent(w.tr.Find("first"))
	children := w.tr.Children(contains)
	require.Len(t, children, 4)
	assert.Equal(t, "control.wait", w.tr.Attr(children[1], domain.AttrScriptRef))
}

func TestDispatcher_DropOnPaletteDeletes(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	second := w.tr.Find("second")

	_, err := w.d.Handle(ctx, domain.DragStart{Target: second})
	require.NoError(t, err)
	_, err = w.d.Handle(ctx, domain.Dragging{X: -20, Y: 5})
	require.NoError(t, err)
	res, err := w.d.Handle(ctx, domain.Drop{})
	require.NoError(t, err)

	assert.Equal(t, drag.OutcomeDeleted, res.Outcome)
	assert.False(t, w.tr.Exists(second))
}

func TestDispatcher_IdleEventsAreIgnored(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()

	for _, ev := range []domain.Event{domain.Dragging{X: 1, Y: 1}, domain.Drop{}, domain.DragCancel{}} {
		res, err := w.d.Handle(ctx, ev)
		require.NoError(t, err)
		assert.True(t, res.Ignored, "%s", ev.Type())
	}
}

func TestDispatcher_CancelAndRestart(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	first := w.tr.Find("first")

	_, err := w.d.Handle(ctx, domain.DragStart{Target: first})
	require.NoError(t, err)
	_, err = w.d.Handle(ctx, domain.DragStart{Target: first})
	assert.ErrorIs(t, err, domain.ErrDragInProgress)

	res, err := w.d.Handle(ctx, domain.DragCancel{})
	require.NoError(t, err)
	assert.Equal(t, drag.OutcomeCancelled, res.Outcome)
	assert.False(t, w.tr.Hidden(first))

	_, err = w.d.Handle(ctx, domain.DragStart{Target: first})
	assert.NoError(t, err)
}

func TestDispatcher_Click(t *testing.T) {
	w := newWorkspace(t)
	ctx := context.Background()
	obj := w.tr.Find("obj")
	row := w.tr.Child(w.tr.Header(obj), tree.AnyOf(domain.KindRow))

	res, err := w.d.Handle(ctx, domain.Click{Target: row, Action: rows.ActionAddItem})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, w.tr.ChildrenMatching(w.tr.Header(obj), tree.AnyOf(domain.KindRow)), 2)
}

type bogus struct{}

func (bogus) Type() domain.EventType { return "wiggle" }

func TestDispatcher_UnknownEvent(t *testing.T) {
	w := newWorkspace(t)
	_, err := w.d.Handle(context.Background(), bogus{})
	assert.ErrorIs(t, err, runtime.ErrUnknownEvent)
}

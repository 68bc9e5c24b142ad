package tree_test

import (
	"context"
	"testing"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKind(t *tree.Tree, parent domain.NodeID, kind domain.Kind) int {
	return len(t.ChildrenMatching(parent, tree.AnyOf(kind)))
}

func kinds(t *tree.Tree, parent domain.NodeID) []domain.Kind {
	var out []domain.Kind
	for _, c := range t.Children(parent) {
		out = append(out, t.Kind(c))
	}
	return out
}

func TestCreate_StepHasHeader(t *testing.T) {
	tr := tree.New()
	step := tr.Create(domain.KindStep, domain.Attrs{domain.AttrScriptRef: "control.log"})

	assert.Equal(t, []domain.Kind{domain.KindHeader}, kinds(tr, step))
	assert.Equal(t, domain.PhaseCreated, tr.Phase(step))
	assert.Equal(t, "control.log", tr.Attr(step, domain.AttrScriptRef))
}

func TestCreate_ContextScaffolding(t *testing.T) {
	tr := tree.New()
	ctx := tr.Create(domain.KindContext, domain.Attrs{domain.AttrScriptRef: "control.repeat"})

	assert.Equal(t, []domain.Kind{domain.KindHeader, domain.KindLocals, domain.KindContains}, kinds(tr, ctx))
	header := tr.Header(ctx)
	assert.Equal(t, 1, countKind(tr, header, domain.KindDisclosure))

	t.Run("idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			tr.Scaffold(ctx)
			tr.CreateDefaultChild(ctx, domain.KindContains, false)
			tr.CreateDefaultChild(ctx, domain.KindLocals, true)
		}
		assert.Equal(t, 1, countKind(tr, ctx, domain.KindHeader))
		assert.Equal(t, 1, countKind(tr, ctx, domain.KindLocals))
		assert.Equal(t, 1, countKind(tr, ctx, domain.KindContains))
		assert.Equal(t, 1, countKind(tr, tr.Header(ctx), domain.KindDisclosure))
	})
}

func TestCreate_HeaderPosition(t *testing.T) {
	tr := tree.New()
	label := tr.CreateText(domain.KindLabel, nil, "say")

	step := tr.Create(domain.KindStep, nil, label)
	assert.Equal(t, []domain.Kind{domain.KindLabel, domain.KindHeader}, kinds(tr, step))

	label2 := tr.CreateText(domain.KindLabel, nil, "add")
	expr := tr.Create(domain.KindExpression, domain.Attrs{domain.AttrValueType: "number"}, label2)
	assert.Equal(t, []domain.Kind{domain.KindHeader, domain.KindLabel}, kinds(tr, expr))
}

func TestCreate_ExpressionDisclosureOnlyForContext(t *testing.T) {
	tr := tree.New()
	plain := tr.Create(domain.KindExpression, domain.Attrs{domain.AttrValueType: "number"})
	assert.Equal(t, 0, countKind(tr, tr.Header(plain), domain.KindDisclosure))

	withContext := tr.Create(domain.KindExpression, domain.Attrs{
		domain.AttrValueType: "array",
		domain.AttrContext:   "true",
	})
	assert.Equal(t, 1, countKind(tr, tr.Header(withContext), domain.KindDisclosure))
}

func TestCreateDefaultChild(t *testing.T) {
	tr := tree.New()
	row := tr.Create(domain.KindRow, nil)
	unit := tr.Create(domain.KindUnit, nil)
	require.NoError(t, tr.Append(row, unit))

	first := tr.CreateDefaultChild(row, domain.KindLabel, true)
	again := tr.CreateDefaultChild(row, domain.KindLabel, false)

	assert.Equal(t, first, again)
	assert.Equal(t, []domain.Kind{domain.KindLabel, domain.KindUnit}, kinds(tr, row))
	assert.Equal(t, domain.NoNode, tr.CreateDefaultChild(domain.NodeID(999), domain.KindLabel, false))
}

func TestAttach_HeaderItemsMoveIntoHeader(t *testing.T) {
	tr := tree.New()
	step := tr.Create(domain.KindStep, nil)
	value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "text"})
	row := tr.Create(domain.KindRow, nil)
	inner := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "number"})

	require.NoError(t, tr.Append(step, value))
	require.NoError(t, tr.Append(step, row))
	require.NoError(t, tr.Append(row, inner))

	header := tr.Header(step)
	assert.Equal(t, header, tr.Parent(value))
	assert.Equal(t, header, tr.Parent(row))
	assert.Equal(t, row, tr.Parent(inner), "values inside a row stay in the row")
	assert.Equal(t, 1, countKind(tr, step, domain.KindHeader))
}

func TestAttach_ValueWithoutBlockStaysFree(t *testing.T) {
	tr := tree.New()
	contains := tr.Create(domain.KindContains, nil)
	value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "text"})

	require.NoError(t, tr.Append(contains, value))
	assert.Equal(t, contains, tr.Parent(value))
}

func TestAttach_StatementsMoveIntoContains(t *testing.T) {
	tr := tree.New()
	outer := tr.Create(domain.KindContext, nil)
	step := tr.Create(domain.KindStep, nil)
	nested := tr.Create(domain.KindStep, nil)

	require.NoError(t, tr.Append(outer, step))
	contains := tr.Child(outer, tree.AnyOf(domain.KindContains))
	assert.Equal(t, contains, tr.Parent(step))

	// Attached to the header of the context: still relocated.
	require.NoError(t, tr.Append(tr.Header(outer), nested))
	assert.Equal(t, contains, tr.Parent(nested))
	assert.Equal(t, []domain.NodeID{step, nested}, tr.Children(contains))

	t.Run("free floating", func(t *testing.T) {
		palette := tr.Create(domain.KindContains, nil)
		loose := tr.Create(domain.KindStep, nil)
		require.NoError(t, tr.Append(palette, loose))
		assert.Equal(t, palette, tr.Parent(loose))

		row := tr.Create(domain.KindRow, nil)
		free := tr.Create(domain.KindStep, nil)
		require.NoError(t, tr.Append(row, free))
		assert.Equal(t, row, tr.Parent(free), "no context ancestor: stays where attached")
	})
}

func TestAttach_ExpressionsStayInPlace(t *testing.T) {
	tr := tree.New()
	ctx := tr.Create(domain.KindContext, nil)
	local := tr.Create(domain.KindLocal, nil)
	expr := tr.Create(domain.KindExpression, domain.Attrs{domain.AttrValueType: "number"})

	require.NoError(t, tr.Append(tr.Child(ctx, tree.AnyOf(domain.KindLocals)), local))
	require.NoError(t, tr.Append(local, expr))

	assert.Equal(t, local, tr.Parent(expr))
	assert.Equal(t, domain.KindLocals, tr.Kind(tr.Parent(local)))

	second := tr.Create(domain.KindExpression, domain.Attrs{domain.AttrValueType: "number"})
	err := tr.Append(local, second)
	assert.ErrorIs(t, err, domain.ErrSocketOccupied)
}

func TestValueScaffolding(t *testing.T) {
	tests := []struct {
		name     string
		attrs    domain.Attrs
		wantKind domain.Kind
		wantText string
		readOnly bool
	}{
		{"number", domain.Attrs{domain.AttrValueType: "number", domain.AttrLiteralValue: "42", domain.AttrMin: "0"}, domain.KindInput, "42", false},
		{"text", domain.Attrs{domain.AttrValueType: "text", domain.AttrLiteralValue: "hi"}, domain.KindInput, "hi", false},
		{"any", domain.Attrs{domain.AttrValueType: "any"}, domain.KindInput, "", false},
		{"multi uses first", domain.Attrs{domain.AttrValueType: "color, text", domain.AttrLiteralValue: "#fff"}, domain.KindInput, "#fff", false},
		{"list", domain.Attrs{domain.AttrValueType: "list", domain.AttrOptions: "up, down", domain.AttrLiteralValue: "down"}, domain.KindSelector, "down", false},
		{"list default", domain.Attrs{domain.AttrValueType: "list", domain.AttrOptions: "up,down"}, domain.KindSelector, "up", false},
		{"boolean", domain.Attrs{domain.AttrValueType: "boolean", domain.AttrLiteralValue: "false"}, domain.KindSelector, "false", false},
		{"block typed", domain.Attrs{domain.AttrValueType: "sprite"}, domain.KindInput, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tree.New()
			value := tr.Create(domain.KindValue, tt.attrs)
			children := tr.Children(value)
			require.Len(t, children, 1)
			occupant := children[0]
			assert.Equal(t, tt.wantKind, tr.Kind(occupant))
			assert.Equal(t, tt.wantText, tr.Text(occupant))
			assert.Equal(t, tt.readOnly, tr.Attr(occupant, domain.AttrReadOnly) == "true")
		})
	}

	t.Run("min max copied", func(t *testing.T) {
		tr := tree.New()
		value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "number", domain.AttrMin: "1", domain.AttrMax: "9"})
		input := tr.Child(value, tree.Literals)
		assert.Equal(t, "1", tr.Attr(input, domain.AttrMin))
		assert.Equal(t, "9", tr.Attr(input, domain.AttrMax))
	})

	t.Run("untyped value stays empty", func(t *testing.T) {
		tr := tree.New()
		value := tr.Create(domain.KindValue, nil)
		assert.Empty(t, tr.Children(value))
	})
}

func TestOccupy(t *testing.T) {
	newSocket := func(tr *tree.Tree, valueType string) domain.NodeID {
		return tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: valueType})
	}
	newExpr := func(tr *tree.Tree) domain.NodeID {
		return tr.Create(domain.KindExpression, domain.Attrs{domain.AttrValueType: "number"})
	}

	t.Run("displaces literal input", func(t *testing.T) {
		tr := tree.New()
		value := newSocket(tr, "number")
		input := tr.Child(value, tree.Literals)
		expr := newExpr(tr)

		require.NoError(t, tr.Occupy(value, expr))
		assert.Equal(t, []domain.NodeID{expr}, tr.Children(value))
		assert.False(t, tr.Exists(input))
	})

	t.Run("second expression rejected without side effects", func(t *testing.T) {
		tr := tree.New()
		value := newSocket(tr, "number")
		first := newExpr(tr)
		require.NoError(t, tr.Occupy(value, first))
		before := tr.Snapshot(value)

		second := newExpr(tr)
		err := tr.Occupy(value, second)
		require.ErrorIs(t, err, domain.ErrSocketOccupied)
		assert.Empty(t, cmp.Diff(before, tr.Snapshot(value)))
		assert.Equal(t, domain.NoNode, tr.Parent(second))

		err = tr.Append(value, second)
		require.ErrorIs(t, err, domain.ErrSocketOccupied)
		assert.Equal(t, []domain.NodeID{first}, tr.Children(value))
	})

	t.Run("selector rejected", func(t *testing.T) {
		tr := tree.New()
		value := newSocket(tr, "boolean")
		err := tr.Occupy(value, newExpr(tr))
		assert.ErrorIs(t, err, domain.ErrSocketOccupied)
	})

	t.Run("not a socket", func(t *testing.T) {
		tr := tree.New()
		row := tr.Create(domain.KindRow, nil)
		err := tr.Occupy(row, newExpr(tr))
		assert.ErrorIs(t, err, domain.ErrNotASocket)
	})

	t.Run("vacated socket scaffolds again", func(t *testing.T) {
		tr := tree.New()
		value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "number", domain.AttrLiteralValue: "7"})
		expr := newExpr(tr)
		require.NoError(t, tr.Occupy(value, expr))
		require.NoError(t, tr.Detach(expr))

		tr.Scaffold(value)
		input := tr.Child(value, tree.Literals)
		require.NotEqual(t, domain.NoNode, input)
		assert.Equal(t, "7", tr.Text(input))
	})
}

func TestClone_RoundTrip(t *testing.T) {
	tr := tree.New()
	value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "number", domain.AttrLiteralValue: "3"})
	ctx := tr.Create(domain.KindContext, domain.Attrs{domain.AttrScriptRef: "control.repeat", domain.AttrName: "repeat"}, value)
	inner := tr.Create(domain.KindStep, domain.Attrs{domain.AttrScriptRef: "control.log"})
	require.NoError(t, tr.Append(ctx, inner))
	tr.SetHidden(inner, true)

	before := tr.Snapshot(ctx)
	clone, err := tr.Clone(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, ctx, clone)
	assert.Equal(t, domain.NoNode, tr.Parent(clone))
	assert.False(t, tr.Hidden(tr.Children(tr.Child(clone, tree.AnyOf(domain.KindContains)))[0]), "hidden flag is runtime-only")

	tr.SetHidden(inner, false)
	before = tr.Snapshot(ctx)

	script := tr.Create(domain.KindContains, nil)
	require.NoError(t, tr.Append(script, clone))
	assert.Empty(t, cmp.Diff(before, tr.Snapshot(clone)))

	// Clones share nothing with the original.
	require.NoError(t, tr.SetText(tr.Child(value, tree.Literals), "9"))
	assert.NotEqual(t, tr.Snapshot(ctx), tr.Snapshot(clone))
}

func TestInsertAfterAndBefore(t *testing.T) {
	tr := tree.New()
	contains := tr.Create(domain.KindContains, nil)
	a := tr.Create(domain.KindStep, domain.Attrs{domain.AttrName: "a"})
	b := tr.Create(domain.KindStep, domain.Attrs{domain.AttrName: "b"})
	c := tr.Create(domain.KindStep, domain.Attrs{domain.AttrName: "c"})
	for _, id := range []domain.NodeID{a, b, c} {
		require.NoError(t, tr.Append(contains, id))
	}

	require.NoError(t, tr.InsertAfter(c, a))
	assert.Equal(t, []domain.NodeID{b, c, a}, tr.Children(contains))

	require.NoError(t, tr.InsertBefore(b, a))
	assert.Equal(t, []domain.NodeID{a, b, c}, tr.Children(contains))

	require.NoError(t, tr.InsertAfter(a, c))
	assert.Equal(t, []domain.NodeID{a, c, b}, tr.Children(contains))

	d := tr.Create(domain.KindStep, nil)
	require.NoError(t, tr.InsertAfter(b, d))
	assert.Equal(t, 3, tr.Index(d))

	root := tr.Create(domain.KindStep, nil)
	assert.Error(t, tr.InsertAfter(root, d))
}

func TestCycleRejected(t *testing.T) {
	tr := tree.New()
	outer := tr.Create(domain.KindContext, nil)
	inner := tr.Create(domain.KindContext, nil)
	require.NoError(t, tr.Append(outer, inner))

	err := tr.Append(tr.Child(inner, tree.AnyOf(domain.KindContains)), outer)
	assert.ErrorIs(t, err, domain.ErrCycle)
	assert.Equal(t, domain.NoNode, tr.Parent(outer))
}

func TestDetachDeleteAndPins(t *testing.T) {
	tr := tree.New()
	ctx := tr.Create(domain.KindContext, nil)
	step := tr.Create(domain.KindStep, nil)
	require.NoError(t, tr.Append(ctx, step))

	tr.Pin(step)
	assert.True(t, tr.Pinned(step))
	assert.ErrorIs(t, tr.Detach(step), domain.ErrNodePinned)
	assert.ErrorIs(t, tr.Delete(ctx), domain.ErrNodePinned, "deleting an ancestor of a pinned node")
	tr.Unpin(step)

	require.NoError(t, tr.Detach(step))
	assert.Equal(t, domain.PhaseDetached, tr.Phase(step))
	assert.Equal(t, domain.NoNode, tr.Parent(step))
	assert.True(t, tr.Exists(step))

	header := tr.Header(ctx)
	require.NoError(t, tr.Delete(ctx))
	assert.False(t, tr.Exists(ctx))
	assert.False(t, tr.Exists(header))
	assert.ErrorIs(t, tr.Delete(ctx), domain.ErrNodeNotFound)
}

func TestHooks(t *testing.T) {
	var inserted, relocated, removed []domain.NodeID
	var detached int
	hooks := domain.LifecycleHooks{
		OnInsert: func(_ context.Context, e *domain.MutationEvent) {
			inserted = append(inserted, e.Node)
		},
		OnRelocate: func(_ context.Context, e *domain.MutationEvent) {
			relocated = append(relocated, e.Node)
			assert.NotEqual(t, e.OldParent, e.NewParent)
		},
		OnRemove: func(_ context.Context, e *domain.MutationEvent) {
			removed = append(removed, e.Node)
			assert.Equal(t, domain.NoNode, e.NewParent)
		},
		OnDetached: func(context.Context, *domain.PhaseEvent) {
			detached++
		},
	}
	tr := tree.New(tree.WithHooks(hooks))
	step := tr.Create(domain.KindStep, nil)
	value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "text"})

	inserted, relocated = nil, nil
	require.NoError(t, tr.Append(step, value))
	assert.Equal(t, []domain.NodeID{value}, inserted, "value inserted under the step first")
	assert.Equal(t, []domain.NodeID{value}, relocated, "then relocated into the header")

	require.NoError(t, tr.Detach(value))
	assert.Equal(t, []domain.NodeID{value}, removed)
	assert.Equal(t, 1, detached)
}

func TestQueries(t *testing.T) {
	tr := tree.New()
	value := tr.Create(domain.KindValue, domain.Attrs{domain.AttrValueType: "number"})
	step := tr.Create(domain.KindStep, domain.Attrs{domain.AttrName: "walk"}, value)
	ctx := tr.Create(domain.KindContext, nil, step)
	input := tr.Child(value, tree.Literals)

	assert.Equal(t, step, tr.Closest(input, tree.Blocks))
	assert.Equal(t, value, tr.Closest(value, tree.AnyOf(domain.KindValue)))
	assert.Equal(t, ctx, tr.Ancestor(step, tree.Blocks))
	assert.True(t, tr.Within(step, tree.AnyOf(domain.KindContains)))
	assert.False(t, tr.Within(ctx, tree.AnyOf(domain.KindContains)))
	assert.Equal(t, step, tr.Find("walk"))
	assert.True(t, tr.Is(step, tree.Statements))
	assert.Contains(t, tr.Roots(), ctx)

	var depths []int
	tr.Walk(step, func(_ domain.NodeID, depth int) bool {
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []int{0, 1, 2, 3}, depths)
}

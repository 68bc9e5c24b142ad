package validator_test

import (
	"errors"
	"testing"

	"github.com/aretw0/blockyard/internal/demo"
	"github.com/aretw0/blockyard/internal/validator"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/dsl"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTree_DemoIsValid(t *testing.T) {
	tr := tree.New()
	ws, err := demo.Build(tr)
	require.NoError(t, err)

	assert.NoError(t, validator.ValidateTree(tr, append(ws.Palette, ws.Script)...))
}

func TestValidateTree_Violations(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(t *testing.T, tr *tree.Tree, script domain.NodeID)
		want    string
	}{
		{
			name: "context without contains",
			corrupt: func(t *testing.T, tr *tree.Tree, script domain.NodeID) {
				require.NoError(t, tr.Detach(tr.Child(script, tree.AnyOf(domain.KindContains))))
			},
			want: "context without contains",
		},
		{
			name: "block without header",
			corrupt: func(t *testing.T, tr *tree.Tree, _ domain.NodeID) {
				require.NoError(t, tr.Delete(tr.Header(tr.Find("say"))))
			},
			want: "step without header",
		},
		{
			name: "expression type mismatch",
			corrupt: func(t *testing.T, tr *tree.Tree, _ domain.NodeID) {
				require.NoError(t, tr.SetAttr(tr.Find("socket"), domain.AttrValueType, "boolean"))
			},
			want: "cannot drop a number block on a boolean value",
		},
		{
			name: "empty socket",
			corrupt: func(t *testing.T, tr *tree.Tree, _ domain.NodeID) {
				lit := tr.Child(tr.Find("literal"), tree.Literals)
				require.NoError(t, tr.Delete(lit))
			},
			want: "value without occupant",
		},
		{
			name: "hidden node",
			corrupt: func(_ *testing.T, tr *tree.Tree, _ domain.NodeID) {
				tr.SetHidden(tr.Find("say"), true)
			},
			want: "hidden outside a drag session",
		},
		{
			name: "pinned node",
			corrupt: func(_ *testing.T, tr *tree.Tree, _ domain.NodeID) {
				tr.Pin(tr.Find("say"))
			},
			want: "pinned outside a drag session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tree.New()
			b := dsl.New(tr)
			script := b.Context("control.script").Do(
				b.Step("control.log").Name("say").
					Value("text", "hi", dsl.Named("literal")).
					ValueExpr("number", b.Expression("math.add", "number"), dsl.Named("socket")),
			)
			require.NoError(t, b.Err())
			require.NoError(t, validator.ValidateTree(tr, script.ID()))

			tt.corrupt(t, tr, script.ID())

			err := validator.ValidateTree(tr, script.ID())
			var verr *validator.Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			var messages []string
			for _, issue := range verr.Issues {
				messages = append(messages, issue.Message)
			}
			assert.Contains(t, messages, tt.want)
		})
	}
}

func TestValidateTree_MissingRoot(t *testing.T) {
	err := validator.ValidateTree(tree.New(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node 7: root does not exist")
}

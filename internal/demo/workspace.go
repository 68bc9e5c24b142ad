// Package demo provides a sample workspace and behavior library used by the
// CLI and by integration tests.
package demo

import (
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/dsl"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Workspace is a palette plus one script.
type Workspace struct {
	Palette []domain.NodeID
	Script  domain.NodeID
}

// Build populates t with the demo palette and script.
// Every block carries a name handle so replay files can refer to it.
func Build(t *tree.Tree) (*Workspace, error) {
	b := dsl.New(t)

	palette := []*dsl.BlockBuilder{
		b.Step("control.log").Name("palette-log").Label("log").Value("text", "hello"),
		b.Context("control.repeat").Name("palette-repeat").Label("repeat").Value("number", "3", dsl.Range("0", "100")),
		b.Context("control.if").Name("palette-if").Label("if").Value("boolean", "true"),
		b.Expression("math.add", "number").Name("palette-add").Value("number", "1").Label("+").Value("number", "2"),
		b.Expression("text.join", "text").Name("palette-join").Value("text", "a").Value("text", "b"),
		b.Expression("logic.not", "boolean").Name("palette-not").Label("not").Value("boolean", "false"),
	}

	script := b.Context("control.script").Name("main").Label("when run").Do(
		b.Step("control.log").Name("greet").Label("log").Value("text", "hello, world", dsl.Named("greeting")),
		b.Context("control.repeat").Name("loop").Label("repeat").Value("number", "2", dsl.Range("0", "100"), dsl.Named("times")).Do(
			b.Step("control.log").Name("tick").Label("log").ValueExpr("number",
				b.Expression("math.add", "number").Name("sum").Value("number", "40").Label("+").Value("number", "2"),
				dsl.Named("tick-value"),
			),
		),
		b.Step("object.create").Name("record").Label("object").Row(func(r *dsl.RowBuilder) {
			r.Value("text", "answer", dsl.Named("key")).Label(":").Value("any", "42", dsl.Named("item"))
		}),
		b.Context("control.if").Name("check").Label("if").Value("boolean", "true", dsl.Named("condition")).Do(
			b.Step("control.log").Name("yes").Label("log").Value("text", "condition held"),
		),
		b.Step("control.log").Name("color").Label("log").Value("color", "#ff8800", dsl.Named("shade")),
	)

	if err := b.Err(); err != nil {
		return nil, err
	}
	ws := &Workspace{Script: script.ID()}
	for _, p := range palette {
		ws.Palette = append(ws.Palette, p.ID())
	}
	return ws, nil
}

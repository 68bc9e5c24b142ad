/*
Package dsl builds block trees in Go code with a fluent API.

It is the programmatic counterpart of a palette: tests, demos and tools use it
to assemble scripts without issuing individual tree mutations. Every node goes
through the regular tree API, so lifecycle scaffolding and relocation apply
exactly as they do for interactive edits.

Example usage:

	b := dsl.New(tree.New())

	script := b.Context("control.script").Name("main").Do(
		b.Step("control.log").Label("say").Value("text", "hello"),
		b.Context("control.repeat").Value("number", "3").Do(
			b.Step("sprite.move").ValueExpr("number", b.Expression("math.random", "number")),
		),
	)

	t, err := b.Build()
*/
package dsl

/*
Package blockyard is the core of a visual, block-based program editor.

Scripts are trees of typed blocks: steps and contexts are statements, contexts
nest further statements, and expressions fill typed value sockets. The engine
keeps the tree well-formed under edits (scaffolding required parts and moving
misplaced ones), evaluates blocks through a registry of behaviors, and runs the
drag-and-drop state machine that copies blocks out of the palette, moves them
within scripts and type-checks expression drops.

# Usage

	reg := registry.NewRegistry()
	reg.RegisterNamespace("control", map[string]domain.Behavior{
		"log": func(ctx context.Context, args []any) (any, error) {
			fmt.Println(args...)
			return nil, nil
		},
	})

	ed := blockyard.New(blockyard.WithResolver(reg))

	b := dsl.New(ed.Tree())
	script := b.Context("control.script").Do(
		b.Step("control.log").Value("text", "hello"),
	)

	if _, err := ed.Run(ctx, script.ID()); err != nil {
		log.Fatal(err)
	}

Renderers feed pointer events to Editor.Handle and supply a ports.HitTester
that maps positions back to nodes.
*/
package blockyard

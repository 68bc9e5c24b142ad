package blockyard_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/blockyard"
	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/dsl"
	"github.com/aretw0/blockyard/pkg/registry"
)

// ExampleEditor_Run builds a script with the dsl package and runs it.
func ExampleEditor_Run() {
	reg := registry.NewRegistry()
	reg.RegisterNamespace("control", map[string]domain.Behavior{
		"log": func(_ context.Context, args []any) (any, error) {
			fmt.Println(args...)
			return nil, nil
		},
	})
	reg.RegisterNamespace("math", map[string]domain.Behavior{
		"multiply": func(_ context.Context, args []any) (any, error) {
			return args[0].(float64) * args[1].(float64), nil
		},
	})

	ed := blockyard.New(blockyard.WithResolver(reg))
	b := dsl.New(ed.Tree())
	script := b.Context("control.script").Do(
		b.Step("control.log").Value("text", "hello"),
		b.Step("control.log").ValueExpr("number",
			b.Expression("math.multiply", "number").Value("number", "6").Value("number", "7")),
	)
	if err := b.Err(); err != nil {
		log.Fatal(err)
	}

	if _, err := ed.Run(context.Background(), script.ID()); err != nil {
		log.Fatal(err)
	}
	// Output:
	// hello
	// 42
}

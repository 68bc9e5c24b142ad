package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/eval"
	"github.com/aretw0/blockyard/pkg/registry"
)

// ErrArgument is returned when a behavior receives an argument it cannot use.
var ErrArgument = errors.New("invalid argument")

// NewRegistry returns the demo behavior library. control.log writes to out.
func NewRegistry(out io.Writer) *registry.Registry {
	reg := registry.NewRegistry()
	reg.RegisterNamespace("control", map[string]domain.Behavior{
		"script": func(ctx context.Context, _ []any) (any, error) {
			return eval.Body(ctx)
		},
		"log": func(_ context.Context, args []any) (any, error) {
			_, err := fmt.Fprintln(out, args...)
			return nil, err
		},
		"wait": func(context.Context, []any) (any, error) {
			return nil, nil
		},
		"repeat": func(ctx context.Context, args []any) (any, error) {
			n, err := number(args, 0)
			if err != nil {
				return nil, err
			}
			if math.IsNaN(n) || n < 0 {
				return nil, fmt.Errorf("%w: repeat count %v", ErrArgument, n)
			}
			for i := 0; i < int(n); i++ {
				if _, err := eval.Body(ctx); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
		"if": func(ctx context.Context, args []any) (any, error) {
			cond, err := boolean(args, 0)
			if err != nil || !cond {
				return nil, err
			}
			return eval.Body(ctx)
		},
	})
	reg.RegisterNamespace("math", map[string]domain.Behavior{
		"add":      arithmetic(func(a, b float64) (float64, error) { return a + b, nil }),
		"subtract": arithmetic(func(a, b float64) (float64, error) { return a - b, nil }),
		"multiply": arithmetic(func(a, b float64) (float64, error) { return a * b, nil }),
		"divide": arithmetic(func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, fmt.Errorf("%w: division by zero", ErrArgument)
			}
			return a / b, nil
		}),
		"random": func(context.Context, []any) (any, error) {
			return rand.Float64(), nil
		},
	})
	reg.RegisterNamespace("text", map[string]domain.Behavior{
		"join": func(_ context.Context, args []any) (any, error) {
			var sb strings.Builder
			for _, a := range args {
				fmt.Fprint(&sb, a)
			}
			return sb.String(), nil
		},
	})
	reg.RegisterNamespace("logic", map[string]domain.Behavior{
		"not": func(_ context.Context, args []any) (any, error) {
			b, err := boolean(args, 0)
			return !b, err
		},
		"and": func(_ context.Context, args []any) (any, error) {
			for i := range args {
				b, err := boolean(args, i)
				if err != nil || !b {
					return false, err
				}
			}
			return true, nil
		},
	})
	reg.RegisterNamespace("object", map[string]domain.Behavior{
		"create": func(_ context.Context, args []any) (any, error) {
			obj := make(map[string]any, len(args))
			for _, a := range args {
				pair, ok := a.([]any)
				if !ok || len(pair) != 2 {
					return nil, fmt.Errorf("%w: object entry %v", ErrArgument, a)
				}
				obj[fmt.Sprint(pair[0])] = pair[1]
			}
			return obj, nil
		},
	})
	return reg
}

func arithmetic(op func(a, b float64) (float64, error)) domain.Behavior {
	return func(_ context.Context, args []any) (any, error) {
		a, err := number(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		return op(a, b)
	}
}

func number(args []any, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("%w: missing argument %d", ErrArgument, i)
	}
	n, ok := args[i].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: argument %d is %T, want number", ErrArgument, i, args[i])
	}
	return n, nil
}

func boolean(args []any, i int) (bool, error) {
	if i >= len(args) {
		return false, fmt.Errorf("%w: missing argument %d", ErrArgument, i)
	}
	b, ok := args[i].(bool)
	if !ok {
		return false, fmt.Errorf("%w: argument %d is %T, want boolean", ErrArgument, i, args[i])
	}
	return b, nil
}

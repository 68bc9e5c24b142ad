package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
)

// Builder accumulates nodes in a tree.
// The first error is kept and returned by Build; later calls are no-ops.
type Builder struct {
	tree *tree.Tree
	err  error
}

// New creates a builder writing into t.
func New(t *tree.Tree) *Builder {
	return &Builder{tree: t}
}

// Step starts a step block.
func (b *Builder) Step(scriptRef string) *BlockBuilder {
	return b.block(domain.KindStep, domain.Attrs{domain.AttrScriptRef: scriptRef})
}

// Context starts a context block.
func (b *Builder) Context(scriptRef string) *BlockBuilder {
	return b.block(domain.KindContext, domain.Attrs{domain.AttrScriptRef: scriptRef})
}

// Expression starts an expression block producing valueType.
func (b *Builder) Expression(scriptRef, valueType string) *BlockBuilder {
	return b.block(domain.KindExpression, domain.Attrs{
		domain.AttrScriptRef: scriptRef,
		domain.AttrValueType: valueType,
	})
}

func (b *Builder) block(kind domain.Kind, attrs domain.Attrs) *BlockBuilder {
	return &BlockBuilder{builder: b, id: b.tree.Create(kind, attrs)}
}

// Tree returns the tree being built.
func (b *Builder) Tree() *tree.Tree {
	return b.tree
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the tree, or the first error hit while building it.
func (b *Builder) Build() (*tree.Tree, error) {
	if b.err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", b.err)
	}
	return b.tree, nil
}

func (b *Builder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// ValueOption customizes a value socket.
type ValueOption func(domain.Attrs)

// Options lists the choices of a list socket.
func Options(choices ...string) ValueOption {
	return func(a domain.Attrs) {
		a[domain.AttrOptions] = strings.Join(choices, ",")
	}
}

// Range bounds a number socket.
func Range(lo, hi string) ValueOption {
	return func(a domain.Attrs) {
		a[domain.AttrMin] = lo
		a[domain.AttrMax] = hi
	}
}

// Named sets the name handle of a socket.
func Named(name string) ValueOption {
	return func(a domain.Attrs) {
		a[domain.AttrName] = name
	}
}

func (b *Builder) value(valueType, literal string, opts []ValueOption) domain.NodeID {
	attrs := domain.Attrs{domain.AttrValueType: valueType}
	if literal != "" {
		attrs[domain.AttrLiteralValue] = literal
	}
	for _, opt := range opts {
		opt(attrs)
	}
	return b.tree.Create(domain.KindValue, attrs)
}

var errNotAContext = errors.New("only context blocks hold statements and locals")

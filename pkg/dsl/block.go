package dsl

import (
	"fmt"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
)

// BlockBuilder configures one block.
type BlockBuilder struct {
	builder *Builder
	id      domain.NodeID
}

// ID returns the block's node id.
func (n *BlockBuilder) ID() domain.NodeID {
	return n.id
}

// Name sets the block's name handle.
func (n *BlockBuilder) Name(name string) *BlockBuilder {
	n.builder.fail(n.builder.tree.SetAttr(n.id, domain.AttrName, name))
	return n
}

// Help attaches help text.
func (n *BlockBuilder) Help(text string) *BlockBuilder {
	n.builder.fail(n.builder.tree.SetAttr(n.id, domain.AttrHelp, text))
	return n
}

// Label adds a caption to the header.
func (n *BlockBuilder) Label(text string) *BlockBuilder {
	return n.header(n.builder.tree.CreateText(domain.KindLabel, nil, text))
}

// Value adds a socket to the header, prefilled with literal.
func (n *BlockBuilder) Value(valueType, literal string, opts ...ValueOption) *BlockBuilder {
	return n.header(n.builder.value(valueType, literal, opts))
}

// ValueExpr adds a socket to the header occupied by expr.
func (n *BlockBuilder) ValueExpr(valueType string, expr *BlockBuilder, opts ...ValueOption) *BlockBuilder {
	socket := n.builder.value(valueType, "", opts)
	if err := n.builder.tree.Occupy(socket, expr.id); err != nil {
		n.builder.fail(fmt.Errorf("socket of block %d: %w", n.id, err))
	}
	return n.header(socket)
}

// Row adds a row to the header and lets fill populate it.
func (n *BlockBuilder) Row(fill func(*RowBuilder)) *BlockBuilder {
	row := &RowBuilder{builder: n.builder, id: n.builder.tree.Create(domain.KindRow, nil)}
	if fill != nil {
		fill(row)
	}
	return n.header(row.id)
}

// Local declares a local variable of a context, produced by expr.
func (n *BlockBuilder) Local(expr *BlockBuilder) *BlockBuilder {
	locals := n.builder.tree.Child(n.id, tree.AnyOf(domain.KindLocals))
	if locals == domain.NoNode {
		n.builder.fail(fmt.Errorf("local on block %d: %w", n.id, errNotAContext))
		return n
	}
	local := n.builder.tree.Create(domain.KindLocal, nil, expr.id)
	n.builder.fail(n.builder.tree.Append(locals, local))
	return n
}

// Do appends statements to the contains region of a context.
func (n *BlockBuilder) Do(statements ...*BlockBuilder) *BlockBuilder {
	contains := n.builder.tree.Child(n.id, tree.AnyOf(domain.KindContains))
	if contains == domain.NoNode {
		n.builder.fail(fmt.Errorf("statements on block %d: %w", n.id, errNotAContext))
		return n
	}
	for _, s := range statements {
		n.builder.fail(n.builder.tree.Append(contains, s.id))
	}
	return n
}

// Closed collapses the block's disclosure.
func (n *BlockBuilder) Closed() *BlockBuilder {
	disclosure := n.builder.tree.Child(n.builder.tree.Header(n.id), tree.AnyOf(domain.KindDisclosure))
	if disclosure != domain.NoNode {
		n.builder.fail(n.builder.tree.SetAttr(disclosure, domain.AttrClosed, "true"))
	}
	return n
}

func (n *BlockBuilder) header(child domain.NodeID) *BlockBuilder {
	header := n.builder.tree.Header(n.id)
	n.builder.fail(n.builder.tree.Append(header, child))
	return n
}

// RowBuilder configures one row.
type RowBuilder struct {
	builder *Builder
	id      domain.NodeID
}

// ID returns the row's node id.
func (r *RowBuilder) ID() domain.NodeID {
	return r.id
}

// Value adds a socket to the row.
func (r *RowBuilder) Value(valueType, literal string, opts ...ValueOption) *RowBuilder {
	r.builder.fail(r.builder.tree.Append(r.id, r.builder.value(valueType, literal, opts)))
	return r
}

// Unit annotates the previous socket (for example "steps" or "degrees").
func (r *RowBuilder) Unit(text string) *RowBuilder {
	r.builder.fail(r.builder.tree.Append(r.id, r.builder.tree.CreateText(domain.KindUnit, nil, text)))
	return r
}

// Label adds a caption to the row.
func (r *RowBuilder) Label(text string) *RowBuilder {
	r.builder.fail(r.builder.tree.Append(r.id, r.builder.tree.CreateText(domain.KindLabel, nil, text)))
	return r
}

package domain

// NodeID identifies a node inside a tree arena.
// IDs are never reused within a tree, so a stale ID resolves to nothing rather
// than to an unrelated node.
type NodeID int

// NoNode is the zero reference (no parent, no candidate).
const NoNode NodeID = -1

// Kind tags a tree node.
type Kind string

// Block and structural kinds.
const (
	KindStep       Kind = "step"
	KindContext    Kind = "context"
	KindExpression Kind = "expression"
	KindValue      Kind = "value"
	KindRow        Kind = "row"
	KindDisclosure Kind = "disclosure"
	KindLocal      Kind = "local"
	KindUnit       Kind = "unit"
	KindContains   Kind = "contains"

	// Regions and leaves.
	KindHeader   Kind = "header"
	KindLocals   Kind = "locals"
	KindInput    Kind = "input"
	KindSelector Kind = "selector"
	KindLabel    Kind = "label"
)

// Kinds lists every known kind, in declaration order.
var Kinds = []Kind{
	KindStep, KindContext, KindExpression, KindValue, KindRow, KindDisclosure,
	KindLocal, KindUnit, KindContains, KindHeader, KindLocals, KindInput,
	KindSelector, KindLabel,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// IsBlock reports whether k is a Step, Context or Expression.
func (k Kind) IsBlock() bool {
	return k == KindStep || k == KindContext || k == KindExpression
}

// Attribute keys.
const (
	AttrScriptRef    = "scriptRef"
	AttrValueType    = "valueType"
	AttrOptions      = "options"
	AttrMin          = "min"
	AttrMax          = "max"
	AttrLiteralValue = "literalValue"
	AttrClosed       = "closed"
	AttrContext      = "context"
	AttrReadOnly     = "readonly"
	AttrName         = "name"
	AttrHelp         = "help"
)

// Attrs holds node attributes.
type Attrs map[string]string

// Clone returns a copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Phase is the lifecycle state of a node.
type Phase string

const (
	PhaseUnattached Phase = "unattached"
	PhaseCreated    Phase = "created"
	PhaseAttached   Phase = "attached"
	PhaseDetached   Phase = "detached"
)

// Point is a pointer position in page coordinates.
type Point struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

// Sub returns p shifted by -d on both axes.
func (p Point) Sub(d float64) Point {
	return Point{X: p.X - d, Y: p.Y - d}
}

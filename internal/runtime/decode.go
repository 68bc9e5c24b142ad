package runtime

import (
	"fmt"
	"reflect"

	"github.com/aretw0/blockyard/pkg/domain"
	"github.com/aretw0/blockyard/pkg/tree"
	"github.com/mitchellh/mapstructure"
)

// PointOf returns a pointer position over a node, as a renderer lays it out.
type PointOf func(domain.NodeID) (domain.Point, bool)

// Decoder turns loosely typed event maps (from YAML or JSON) into events.
//
// Node references may be ids or name handles. A dragging event may give
// "over: <node>" instead of coordinates; it is resolved through PointOf.
type Decoder struct {
	tree    *tree.Tree
	pointOf PointOf
}

// NewDecoder creates a decoder resolving names in t.
func NewDecoder(t *tree.Tree, pointOf PointOf) *Decoder {
	return &Decoder{tree: t, pointOf: pointOf}
}

// Decode converts one event map.
func (d *Decoder) Decode(raw map[string]any) (domain.Event, error) {
	typ, _ := raw["type"].(string)

	fields := make(map[string]any, len(raw))
	for k, v := range raw {
		if k != "type" && k != "over" {
			fields[k] = v
		}
	}
	if over, ok := raw["over"]; ok {
		id, err := d.nodeRef(over)
		if err != nil {
			return nil, fmt.Errorf("%s event: %w", typ, err)
		}
		p, ok := d.pointOf(id)
		if !ok {
			return nil, fmt.Errorf("%s event: node %d is not laid out", typ, id)
		}
		fields["x"], fields["y"] = p.X, p.Y
	}

	var ev domain.Event
	switch domain.EventType(typ) {
	case domain.EventDragStart:
		var e domain.DragStart
		if err := d.decode(fields, &e); err != nil {
			return nil, err
		}
		ev = e
	case domain.EventDragging:
		var e domain.Dragging
		if err := d.decode(fields, &e); err != nil {
			return nil, err
		}
		ev = e
	case domain.EventDrop:
		ev = domain.Drop{}
	case domain.EventDragCancel:
		ev = domain.DragCancel{}
	case domain.EventClick:
		var e domain.Click
		if err := d.decode(fields, &e); err != nil {
			return nil, err
		}
		ev = e
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, typ)
	}
	return ev, nil
}

func (d *Decoder) decode(fields map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  d.nodeHook,
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(fields); err != nil {
		return fmt.Errorf("failed to decode %T: %w", out, err)
	}
	return nil
}

var nodeIDType = reflect.TypeOf(domain.NodeID(0))

// nodeHook lets node fields be written as name handles.
func (d *Decoder) nodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != nodeIDType {
		return data, nil
	}
	return d.nodeRef(data)
}

func (d *Decoder) nodeRef(v any) (domain.NodeID, error) {
	switch ref := v.(type) {
	case string:
		id := d.tree.Find(ref)
		if id == domain.NoNode {
			return domain.NoNode, fmt.Errorf("no node named %q: %w", ref, domain.ErrNodeNotFound)
		}
		return id, nil
	case int:
		return domain.NodeID(ref), nil
	case domain.NodeID:
		return ref, nil
	default:
		return domain.NoNode, fmt.Errorf("invalid node reference %v (%T)", v, v)
	}
}

package domain

// EventType names a normalized UI event.
type EventType string

const (
	EventDragStart  EventType = "drag-start"
	EventDragging   EventType = "dragging"
	EventDrop       EventType = "drop"
	EventDragCancel EventType = "drag-cancel"
	EventClick      EventType = "click"
)

// Event is a normalized pointer/interaction event.
type Event interface {
	Type() EventType
}

// DragStart begins a drag on the block containing Target.
type DragStart struct {
	Target NodeID  `mapstructure:"target"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
}

// Dragging reports the pointer position during a drag.
type Dragging struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// Drop ends a drag on the current candidate.
type Drop struct{}

// DragCancel aborts a drag.
type DragCancel struct{}

// Click activates a control. Action is the control's role ("add-item", "remove-item").
type Click struct {
	Target NodeID `mapstructure:"target"`
	Action string `mapstructure:"action"`
}

func (DragStart) Type() EventType  { return EventDragStart }
func (Dragging) Type() EventType   { return EventDragging }
func (Drop) Type() EventType       { return EventDrop }
func (DragCancel) Type() EventType { return EventDragCancel }
func (Click) Type() EventType      { return EventClick }

// Point returns the pointer position of the event.
func (e DragStart) Point() Point { return Point{X: e.X, Y: e.Y} }

// Point returns the pointer position of the event.
func (e Dragging) Point() Point { return Point{X: e.X, Y: e.Y} }

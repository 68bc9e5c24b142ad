package types

import (
	"strings"
)

// Type is a declared value type.
type Type string

// The closed vocabulary of produced types.
const (
	Number  Type = "number"
	Text    Type = "text"
	Color   Type = "color"
	Boolean Type = "boolean"
	Array   Type = "array"
	Object  Type = "object"
	Any     Type = "any"
	Sprite  Type = "sprite"
	Sound   Type = "sound"
	Image   Type = "image"
	Shape   Type = "shape"
	Vector  Type = "vector"
	Path    Type = "path"
	PointT  Type = "point"
	Rect    Type = "rect"

	// List is socket-only: a drop-down over the socket's options.
	List Type = "list"
)

// categories maps each produced type to the palette category used to style it.
var categories = map[Type]string{
	Number:  "math",
	Text:    "text",
	Color:   "color",
	Boolean: "boolean",
	Array:   "array",
	Object:  "object",
	Any:     "control",
	Sprite:  "sprite",
	Sound:   "sound",
	Image:   "image",
	Shape:   "shape",
	Vector:  "vector",
	Path:    "path",
	PointT:  "point",
	Rect:    "rect",
}

// Known reports whether t belongs to the produced-type vocabulary.
func Known(t Type) bool {
	_, ok := categories[t]
	return ok
}

// Category returns the palette category of t, or "" for unknown types.
func Category(t Type) string {
	return categories[t]
}

// Set is the ordered set of types a socket accepts.
type Set []Type

// ParseSet splits a comma-separated valueType attribute.
// Surrounding whitespace is trimmed and empty entries are dropped.
func ParseSet(s string) Set {
	var out Set
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, Type(part))
	}
	return out
}

// Primary returns the first declared type, or "" for an empty set.
func (s Set) Primary() Type {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Contains reports whether t is a member of s.
func (s Set) Contains(t Type) bool {
	for _, member := range s {
		if member == t {
			return true
		}
	}
	return false
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// Accepts reports whether a socket accepting set can hold an expression of type t.
func Accepts(set Set, t Type) bool {
	return set.Contains(Any) || set.Contains(t)
}

// Check is Accepts with a descriptive error.
func Check(socket string, expr string) error {
	set := ParseSet(socket)
	t := Type(strings.TrimSpace(expr))
	if Accepts(set, t) {
		return nil
	}
	return &MismatchError{Accepted: set, Got: t}
}

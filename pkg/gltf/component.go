package gltf

import "fmt"

// ComponentType identifies the binary encoding of one accessor component.
// Only the three codes below are recognized; every other value fails with
// ErrUnsupportedFormat when its size is requested.
type ComponentType uint32

const (
	UnsignedShort ComponentType = 5123
	UnsignedInt   ComponentType = 5125
	Float         ComponentType = 5126
)

// Size returns the component size in bytes.
func (c ComponentType) Size() (int, error) {
	switch c {
	case UnsignedShort:
		return 2, nil
	case UnsignedInt, Float:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: component type %d", ErrUnsupportedFormat, uint32(c))
	}
}

// String returns the glTF name of the component type.
func (c ComponentType) String() string {
	switch c {
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case UnsignedInt:
		return "UNSIGNED_INT"
	case Float:
		return "FLOAT"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(c))
	}
}

// IndexTypes are the component types accepted for index accessors.
var IndexTypes = []ComponentType{UnsignedShort, UnsignedInt}

// ElementShape is the accessor "type": how many components make one element.
type ElementShape string

const (
	Scalar ElementShape = "SCALAR"
	Vec2   ElementShape = "VEC2"
	Vec3   ElementShape = "VEC3"
)

// Components returns the number of components per element, or 0 for an
// unknown shape.
func (s ElementShape) Components() int {
	switch s {
	case Scalar:
		return 1
	case Vec2:
		return 2
	case Vec3:
		return 3
	default:
		return 0
	}
}
